package bram

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var stimulusFields = []string{
	"read_addr", "write_enable", "write_addr", "write_data",
}

// ReadStimulus parses cycle inputs from CSV. Each record is
//
//	read_addr,write_enable,write_addr,write_data
//
// Addresses are decimal or x for Undefined; a negative address is Undefined
// too. write_enable is 0, 1, true or false. write_data is a binary word (see
// ParseWord) or x. Lines starting with # are comments, and a first record
// starting with read_addr is a header.
func ReadStimulus(r io.Reader, width int) ([]CycleInput, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = len(stimulusFields)
	reader.TrimLeadingSpace = true

	var inputs []CycleInput

	for record := 1; ; record++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read stimulus: %w", err)
		}

		if record == 1 && strings.TrimSpace(fields[0]) == stimulusFields[0] {
			continue
		}

		in, err := parseCycleInput(fields, width)
		if err != nil {
			var stimErr *StimulusError
			if errors.As(err, &stimErr) {
				stimErr.Record = record
			}

			return nil, err
		}

		inputs = append(inputs, in)
	}

	return inputs, nil
}

func parseCycleInput(fields []string, width int) (CycleInput, error) {
	var in CycleInput
	var err error

	in.ReadAddr, err = ParseAddress(fields[0])
	if err != nil {
		return in, &StimulusError{Field: stimulusFields[0], Err: err}
	}

	in.WriteEnable, err = strconv.ParseBool(strings.TrimSpace(fields[1]))
	if err != nil {
		return in, &StimulusError{Field: stimulusFields[1], Err: err}
	}

	in.WriteAddr, err = ParseAddress(fields[2])
	if err != nil {
		return in, &StimulusError{Field: stimulusFields[2], Err: err}
	}

	data := strings.TrimSpace(fields[3])
	if isUnknown(data) {
		in.WriteData = Undefined(width)
		return in, nil
	}

	in.WriteData, err = ParseWord(data, width)
	if err != nil {
		return in, &StimulusError{Field: stimulusFields[3], Err: err}
	}

	return in, nil
}

// ParseAddress parses a decimal address. x or X gives an Undefined address,
// and so does a negative number.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if isUnknown(s) {
		return UndefinedAddr(), nil
	}

	v, err := strconv.ParseInt(s, 10, 0)
	if err == nil {
		return AddrFromInt(int(v)), nil
	}

	if !errors.Is(err, strconv.ErrRange) || strings.HasPrefix(s, "-") {
		return Address{}, err
	}

	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Address{}, err
	}

	return Addr(u), nil
}

func isUnknown(s string) bool {
	return s == "x" || s == "X"
}
