/*
 * rules.go, part of goprep.
 *
 * Copyright 2023 Raul Mera <rmeraaATacademicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package prep

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Rule describes how one legacy atom is renamed and repositioned: the
//replacement atom and residue names, the 0-based position of the atom within
//the output residue, the total atom count of that residue, and whether the
//residue ends a terminal-bound group.
type Rule struct {
	Name    string
	MolName string
	Order   int
	NAtoms  int
	Ter     bool
}

//RuleTable maps a legacy residue name, and a legacy atom name within that
//residue, to its replacement rule.
type RuleTable map[string]map[string]*Rule

//Rule returns the rule governing the given legacy residue/atom name pair, or
//nil if the atom is not governed by any rule and must be left untouched.
func (T RuleTable) Rule(molname, name string) *Rule {
	res, ok := T[molname]
	if !ok {
		return nil
	}
	return res[name]
}

//ReadRuleTable reads a naming-conversion table from fname. The format is the
//one of the CHARMM-to-AMBER replacement tables: one free comment line, then
//comma-separated records whose first record names the columns. The columns
//search ("atom residue", the legacy pair), replace ("atom residue", the new
//pair), order, num_atom and TER are required; any row that does not parse is
//a fatal format error naming the row. Files ending in .gz or .zst are
//decompressed on the fly; anything else is memory-mapped and read as plain
//text.
func ReadRuleTable(fname string) (RuleTable, error) {
	buf, err := slurp(fname)
	if err != nil {
		return nil, errDecorate(err, "ReadRuleTable")
	}
	nl := bytes.IndexByte(buf, '\n')
	if nl < 0 {
		return nil, Error{MalformedRule, Format, fname, []string{"ReadRuleTable"}, true}
	}
	r := csv.NewReader(bytes.NewReader(buf[nl+1:])) //the first line is a comment
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, Error{MalformedRule, Format, fname, []string{"ReadRuleTable"}, true}
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, want := range []string{"search", "replace", "order", "num_atom", "TER"} {
		if _, ok := col[want]; !ok {
			return nil, Error{MalformedRule + ": missing column " + want, Format, fname, []string{"ReadRuleTable"}, true}
		}
	}
	table := make(RuleTable)
	for row := 1; ; row++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		badrow := fmt.Sprintf("%s, row %d", fname, row)
		if err != nil || len(rec) < len(header) {
			return nil, Error{MalformedRule, Format, badrow, []string{"ReadRuleTable"}, true}
		}
		search := strings.Fields(rec[col["search"]])
		replace := strings.Fields(rec[col["replace"]])
		if len(search) != 2 || len(replace) != 2 {
			return nil, Error{MalformedRule, Format, badrow, []string{"ReadRuleTable"}, true}
		}
		order, err := strconv.Atoi(strings.TrimSpace(rec[col["order"]]))
		if err != nil {
			return nil, Error{MalformedRule, Format, badrow, []string{"ReadRuleTable"}, true}
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(rec[col["num_atom"]]))
		if err != nil {
			return nil, Error{MalformedRule, Format, badrow, []string{"ReadRuleTable"}, true}
		}
		var ter bool
		switch strings.TrimSpace(rec[col["TER"]]) {
		case "True":
			ter = true
		case "False":
			ter = false
		default:
			return nil, Error{MalformedRule, Format, badrow, []string{"ReadRuleTable"}, true}
		}
		searchatm, searchres := search[0], search[1]
		if _, ok := table[searchres]; !ok {
			table[searchres] = make(map[string]*Rule)
		}
		table[searchres][searchatm] = &Rule{replace[0], replace[1], order, natoms, ter}
	}
	return table, nil
}

//slurp returns the whole contents of fname, decompressing .gz and .zst files
//and memory-mapping everything else.
func slurp(fname string) ([]byte, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), Format, fname, []string{"slurp"}, true}
	}
	defer f.Close()
	temp := strings.Split(fname, ".")
	switch strings.ToLower(temp[len(temp)-1]) {
	case "gz":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{err.Error(), Format, fname, []string{"gzip.NewReader", "slurp"}, true}
		}
		defer gz.Close()
		buf, err := io.ReadAll(gz)
		if err != nil {
			return nil, Error{err.Error(), Format, fname, []string{"slurp"}, true}
		}
		return buf, nil
	case "zst":
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, Error{err.Error(), Format, fname, []string{"zstd.NewReader", "slurp"}, true}
		}
		defer zr.Close()
		buf, err := io.ReadAll(zr)
		if err != nil {
			return nil, Error{err.Error(), Format, fname, []string{"slurp"}, true}
		}
		return buf, nil
	default:
		mm, err := mmap.Map(f, mmap.RDONLY, 0)
		if err != nil {
			return nil, Error{err.Error(), Format, fname, []string{"mmap.Map", "slurp"}, true}
		}
		defer mm.Unmap()
		buf := make([]byte, len(mm))
		copy(buf, mm)
		return buf, nil
	}
}
