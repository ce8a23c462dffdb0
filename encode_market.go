package investo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/etnz/investo/date"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// attrOn is the reserved property holding the date of a price line.
const attrOn = "on"

// marketDataFilesGlob matches the yearly price files, in any sub folder.
const marketDataFilesGlob = "**/[0-9][0-9][0-9][0-9].jsonl"

// This file persists market data in a folder, in a way that is still human-readable and git-friendly.
//
// One file per year, one line per day: {"on":"2025-01-02","AAPL":243.85,"MSFT":418.58}

// decodeDailyPrices decodes a single line from the market files.
func decodeDailyPrices(m *Market, filename string, n int, line []byte) error {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber() // keep prices exact.
	jobj := make(map[string]any)
	if err := dec.Decode(&jobj); err != nil {
		return fmt.Errorf("parse error %s:%v: not a correct json: %w", filename, n, err)
	}

	jvalue, ok := jobj[attrOn]
	if !ok {
		return fmt.Errorf("parse error %s:%v: missing the property %q with a date", filename, n, attrOn)
	}
	jstring, ok := jvalue.(string)
	if !ok {
		return fmt.Errorf("parse error %s:%v: property %q must be of type 'string'", filename, n, attrOn)
	}
	on, err := date.Parse(jstring)
	if err != nil {
		return fmt.Errorf("parse error %s:%v: property %q must be a valid date: %w", filename, n, attrOn, err)
	}

	// Read all other attributes as (id, price) pairs.
	for id, jprice := range jobj {
		if id == attrOn {
			continue
		}
		num, ok := jprice.(json.Number)
		if !ok {
			return fmt.Errorf("parse error %s:%v: property %q must be of type 'number'", filename, n, id)
		}
		price, err := decimal.NewFromString(num.String())
		if err != nil {
			return fmt.Errorf("parse error %s:%v: property %q: %w", filename, n, id, err)
		}
		m.Append(id, on, M(price))
	}
	return nil
}

// decodeMarketFile decodes all lines of a yearly price file.
func decodeMarketFile(m *Market, filename string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := decodeDailyPrices(m, filename, n, scanner.Bytes()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// DecodeMarket reads every yearly price file under folder.
// A missing folder is an empty market.
func DecodeMarket(folder string) (*Market, error) {
	m := NewMarket()
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		return m, nil
	}
	fsys := os.DirFS(folder)
	filenames, err := doublestar.Glob(fsys, marketDataFilesGlob)
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan folder %q for market data files: %w", folder, err)
	}
	for _, name := range filenames {
		if err := decodeFSFile(m, fsys, name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeFSFile(m *Market, fsys fs.FS, name string) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("cannot open %q for reading: %w", name, err)
	}
	defer f.Close()
	return decodeMarketFile(m, name, f)
}

// encodeDailyPrices persists a single line in a yearly file.
func encodeDailyPrices(w io.Writer, m *Market, on date.Date, ids []string) error {
	var jw jsonObjectWriter
	jw.Append(attrOn, on.String())
	for _, id := range ids {
		if price, ok := m.Price(id, on); ok {
			jw.Append(id, price)
		}
	}
	b, err := jw.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// EncodeMarket writes the market into one file per year in folder. Yearly
// files that no longer have prices are deleted.
func EncodeMarket(folder string, m *Market) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
	}
	ids := m.IDs()
	histories := make([]*date.History[Money], 0, len(ids))
	for _, id := range ids {
		histories = append(histories, m.prices[id])
	}

	log := logrus.WithField("folder", folder)
	created := make(map[string]struct{})
	var current *os.File
	closeCurrent := func() error {
		if current == nil {
			return nil
		}
		return current.Close()
	}
	for on := range date.Iterate(histories...) {
		name := fmt.Sprintf("%d.jsonl", on.Year())
		if _, ok := created[name]; !ok {
			if err := closeCurrent(); err != nil {
				return fmt.Errorf("persist error: %w", err)
			}
			f, err := os.Create(filepath.Join(folder, name))
			if err != nil {
				return fmt.Errorf("persist error: cannot create file %q: %w", name, err)
			}
			current = f
			created[name] = struct{}{}
			log.WithField("file", name).Debug("create market data file")
		}
		if err := encodeDailyPrices(current, m, on, ids); err != nil {
			closeCurrent()
			return fmt.Errorf("persist error: write error on file %q: %w", name, err)
		}
	}
	if err := closeCurrent(); err != nil {
		return fmt.Errorf("persist error: %w", err)
	}

	// Delete extraneous files.
	filenames, err := doublestar.Glob(os.DirFS(folder), "[0-9][0-9][0-9][0-9].jsonl")
	if err != nil {
		return fmt.Errorf("persist error: cannot scan folder %q: %w", folder, err)
	}
	for _, name := range filenames {
		if _, ok := created[name]; ok || strings.Contains(name, "/") {
			continue
		}
		if err := os.Remove(filepath.Join(folder, name)); err != nil {
			return fmt.Errorf("persist error: cannot delete file %q: %w", name, err)
		}
		log.WithField("file", name).Debug("delete market data file")
	}
	return nil
}
