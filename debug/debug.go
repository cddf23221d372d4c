// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2022  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package debug supplies fixtures and dump helpers used only by this
// module's own tests: a real embedded TrueType font to load in table
// tests, and short human-readable renderings of a decoded Font for use
// in test failure messages. It is not a runtime logging facility.
package debug

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/tesserfont/sfnt"
	"github.com/tesserfont/sfnt/fontdata"
)

// GoRegular loads the embedded Go Regular TrueType font, for use as a
// realistic test fixture without shipping a binary font file in the
// repository.
func GoRegular() *sfnt.Font {
	f, err := sfnt.Load(fontdata.New(goregular.TTF))
	if err != nil {
		panic(err)
	}
	return f
}

// DumpTables renders a font's table directory as one line per table:
// tag, offset, length, checksum. Intended for test failure messages, not
// for parsing.
func DumpTables(f *sfnt.Font) string {
	var b strings.Builder
	for _, t := range f.Tables() {
		fmt.Fprintf(&b, "%s  off=%-8d len=%-8d sum=%#08x\n",
			t.Header.Tag, t.Header.Offset, t.Header.Length, t.Header.CheckSum)
	}
	return b.String()
}
