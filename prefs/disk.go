// This file is part of VMusic.
//
// VMusic is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMusic is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMusic.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vmusic/vmusic/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file while vmusic is running ***"

// NoPrefsFile is the pattern of the error returned by Load() when the prefs
// file does not exist. Test with curated.Is().
const NoPrefsFile = "prefs: no preferences file (%s)"

// the separator between key and value in the prefs file
const separator = " :: "

// Disk represents preference values as stored on disk. More than one Disk
// instance can use the same file. Values stored by other instances are
// preserved when the file is saved.
type Disk struct {
	path    string
	entries map[string]Pref

	// values taken from the command line stack when the entry was added.
	// these are reapplied every time the file is loaded
	overrides map[string]Value
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k].String()))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: no path for preferences file")
	}
	return &Disk{
		path:      path,
		entries:   make(map[string]Pref),
		overrides: make(map[string]Value),
	}, nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Add preference value to list of values to store/load from Disk. The key
// value will be used to identify the value in the prefs file.
//
// If a value for the key has been pushed onto the command line stack then
// that value is applied immediately.
func (dsk *Disk) Add(key string, p Pref) error {
	if strings.Contains(key, separator) || strings.TrimSpace(key) != key || key == "" {
		return fmt.Errorf("prefs: illegal key (%q)", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key already added (%s)", key)
	}

	dsk.entries[key] = p

	return dsk.commandLine(key)
}

// apply any command line value for key
func (dsk *Disk) commandLine(key string) error {
	if ok, v := GetCommandLinePref(key); ok {
		dsk.overrides[key] = v
	}
	if v, ok := dsk.overrides[key]; ok {
		if err := dsk.entries[key].Set(v); err != nil {
			return fmt.Errorf("prefs: %s: %w", key, err)
		}
	}
	return nil
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return fmt.Errorf("prefs: %s: %w", k, err)
		}
	}
	return nil
}

// read the prefs file into a map of key/value strings
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NoPrefsFile, dsk.path)
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	values := make(map[string]string)

	scanner := bufio.NewScanner(f)

	// the boilerplate line is optional. if the first line is something else
	// then it is treated like any other line
	first := true

	for scanner.Scan() {
		l := scanner.Text()
		if first {
			first = false
			if l == WarningBoilerPlate {
				continue
			}
		}

		k, v, ok := strings.Cut(l, separator)
		if !ok {
			continue
		}
		values[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return values, nil
}

// Load preference values from disk. Keys in the file that have not been added
// to the Disk instance are ignored. Command line values take precedence over
// values in the file.
func (dsk *Disk) Load() error {
	values, err := dsk.read()
	if err != nil {
		return err
	}

	for k, v := range values {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	for _, k := range dsk.keys() {
		if err := dsk.commandLine(k); err != nil {
			return err
		}
	}

	return nil
}

// Save current preference values to disk. Values in the existing file that
// are not known to this Disk instance are preserved, unless the key is
// defunct.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		if !curated.Is(err, NoPrefsFile) {
			return err
		}
		values = make(map[string]string)
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if !isDefunct(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, values[k])
	}

	err = w.Flush()
	if err != nil {
		f.Close()
		return fmt.Errorf("prefs: %w", err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}
