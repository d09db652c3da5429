package cfgfile

import (
	"os"

	"github.com/ansel1/merry"
)

type MarshalFunc = func(in interface{}) (out []byte, err error)
type UnmarshalFunc = func(in []byte, out interface{}) error

// F is a settings file with a fixed encoding.
type F struct {
	filename  string
	marshal   MarshalFunc
	unmarshal UnmarshalFunc
}

func New(filename string, marshal MarshalFunc, unmarshal UnmarshalFunc) *F {
	return &F{
		filename:  filename,
		marshal:   marshal,
		unmarshal: unmarshal,
	}
}

func (x *F) Set(in interface{}) error {
	data, err := x.marshal(in)
	if err != nil {
		return x.err(err)
	}
	if err := os.WriteFile(x.filename, data, 0666); err != nil {
		return x.err(err)
	}
	return nil
}

func (x *F) Get(out interface{}) error {
	data, err := os.ReadFile(x.filename)
	if err != nil {
		return merry.Wrap(err)
	}
	if err := x.unmarshal(data, out); err != nil {
		return x.err(err)
	}
	return nil
}

func (x *F) Exists() bool {
	_, err := os.Stat(x.filename)
	return err == nil
}

func (x *F) err(err error) error {
	return merry.Append(err, x.filename)
}

func (x *F) Filename() string {
	return x.filename
}
