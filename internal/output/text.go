package output

import "fmt"

func init() {
	RegisterFormatter("text", &TextFormatter{})
}

// TextFormatter prints documents through their String method.
type TextFormatter struct{}

func (f *TextFormatter) Format(doc any, _ Config) ([]byte, error) {
	s, ok := doc.(fmt.Stringer)
	if !ok {
		return nil, fmt.Errorf("%T has no text form", doc)
	}
	return []byte(s.String()), nil
}
