package render

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/konamimap/internal/card"
)

// DefaultTableName is the C++ variable holding the mapping
const DefaultTableName = "card_id_mapping"

// CppHeader renders entries as a C++ header declaring
// std::map<int, std::wstring> tableName. Entries without a KONAMI ID are
// commented out so they stay visible without becoming lookup keys.
func CppHeader(entries []card.Entry, tableName string) string {
	if tableName == "" {
		tableName = DefaultTableName
	}

	var b strings.Builder
	b.WriteString("#pragma once\n\n#include <map>\n#include <string>\n\n")
	b.WriteString("std::map<int, std::wstring> " + tableName + " =\n{\n")

	for i, e := range entries {
		b.WriteString("\t")
		if e.IsSentinel() {
			b.WriteString("// ")
		}

		b.WriteString("{" + strconv.Itoa(e.ID) + ", L\"" + escapeName(e.Name) + "\"}")

		if i != len(entries)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}

	b.WriteString("};")

	return b.String()
}

// escapeName only escapes double quotes; names never contain control characters
func escapeName(name string) string {
	return strings.ReplaceAll(name, `"`, `\"`)
}

// WriteFile writes contents to path, truncating any existing file
func WriteFile(path, contents string) error {
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", card.ErrIO, path, err)
	}
	return nil
}
