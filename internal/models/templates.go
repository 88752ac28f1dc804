package models

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/go-faster/errors"
)

// TemplateCount is the fixed number of message slots
const TemplateCount = 5

var ErrTemplateIndex = errors.New("template index out of range")

// TemplateSet holds the message bodies loaded at startup. It is never
// mutated after loading.
type TemplateSet struct {
	texts [TemplateCount]string
}

// TemplateFileName returns the file name of slot i (zero-based)
func TemplateFileName(i int) string {
	return fmt.Sprintf("msg%d.txt", i+1)
}

// Placeholder is the text used for a slot whose file is absent
func Placeholder(i int) string {
	return fmt.Sprintf("[%s not found]", TemplateFileName(i))
}

// LoadTemplates reads msg1.txt..msg5.txt from dir. Absent files become
// placeholders; any other read error is returned.
func LoadTemplates(dir string) (*TemplateSet, error) {
	return LoadTemplatesFS(os.DirFS(dir))
}

func LoadTemplatesFS(fsys fs.FS) (*TemplateSet, error) {
	set := &TemplateSet{}
	for i := range set.texts {
		data, err := fs.ReadFile(fsys, TemplateFileName(i))
		switch {
		case err == nil:
			set.texts[i] = string(data)
		case errors.Is(err, fs.ErrNotExist):
			set.texts[i] = Placeholder(i)
		default:
			return nil, errors.Wrapf(err, "read %s", TemplateFileName(i))
		}
	}
	return set, nil
}

// NewTemplateSet builds a set from literal texts; missing slots become placeholders
func NewTemplateSet(texts ...string) *TemplateSet {
	set := &TemplateSet{}
	for i := range set.texts {
		if i < len(texts) {
			set.texts[i] = texts[i]
		} else {
			set.texts[i] = Placeholder(i)
		}
	}
	return set
}

func (t *TemplateSet) Text(i int) (string, error) {
	if i < 0 || i >= TemplateCount {
		return "", errors.Wrapf(ErrTemplateIndex, "index %d", i)
	}
	return t.texts[i], nil
}

// Texts returns a copy of all slots in order
func (t *TemplateSet) Texts() []string {
	out := make([]string, TemplateCount)
	copy(out, t.texts[:])
	return out
}

// Labels are the picker entries, "Message 1".."Message 5"
func (t *TemplateSet) Labels() []string {
	labels := make([]string, TemplateCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("Message %d", i+1)
	}
	return labels
}
