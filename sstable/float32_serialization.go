package sstable

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// Float32Serialize writes m to fn in the same sparse text layout as
// Uint32Serialize, with %e formatted values.
func Float32Serialize(m *Float32Matrix, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, os.ModePerm)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	r, c := m.Shape()
	fmt.Fprintf(w, "%d,%d\n", r, c)

	for ridx := uint32(0); ridx < r; ridx += 1 {
		for cidx := uint32(0); cidx < c; cidx += 1 {
			if val := m.Get(ridx, cidx); val != 0 {
				fmt.Fprintf(w, "%d,%d,%e\n", ridx, cidx, val)
			}
		}
	}
	return w.Flush()
}

// Float32Deserialize reads a matrix previously written by
// Float32Serialize.
func Float32Deserialize(fn string) (*Float32Matrix, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var tmp *Float32Matrix
	lineIdx := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		txt := strings.TrimSpace(scanner.Text())
		if txt == "" {
			continue
		}
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("table corrupted, shape not found: %s", txt)
			}
			row, err := strconv.ParseUint(shape[0], 10, 32)
			if err != nil {
				return nil, err
			}
			col, err := strconv.ParseUint(shape[1], 10, 32)
			if err != nil {
				return nil, err
			}
			tmp = NewFloat32Matrix(uint32(row), uint32(col))
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, ",")
		if len(value) != 3 {
			log.Warningf("table data corrupted, line %d, data %s", lineIdx, txt)
			lineIdx += 1
			continue
		}
		ridx, err := strconv.ParseUint(value[0], 10, 32)
		if err != nil {
			return nil, err
		}
		cidx, err := strconv.ParseUint(value[1], 10, 32)
		if err != nil {
			return nil, err
		}
		val, err := strconv.ParseFloat(value[2], 32)
		if err != nil {
			return nil, err
		}
		tmp.Set(uint32(ridx), uint32(cidx), float32(val))
		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if tmp == nil {
		return nil, fmt.Errorf("table corrupted, empty file %s", fn)
	}
	return tmp, nil
}
