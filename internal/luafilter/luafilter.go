// Package luafilter runs a user Lua script over decoded samples.
//
// The script may assign a global table
//
//	histogram = { bins = 20, title = "adder output" }
//
// overriding the configured histogram settings, and may define
//
//	function accept(s) return s.Value > 0 end
//
// called for every sample in input order; a falsy result drops the sample.
// Sample fields are visible under their Go names: Index, Token, Value.
package luafilter

import (
	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/config"
	"github.com/fpawel/hexfloat/internal/data"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
	luar "layeh.com/gopher-luar"
)

type Script struct {
	name string
	l    *lua.LState
}

func Load(filename string) (*Script, error) {
	l := lua.NewState()
	if err := l.DoFile(filename); err != nil {
		l.Close()
		return nil, merry.Prepend(err, filename)
	}
	return &Script{name: filename, l: l}, nil
}

func LoadString(name, src string) (*Script, error) {
	l := lua.NewState()
	if err := l.DoString(src); err != nil {
		l.Close()
		return nil, merry.Prepend(err, name)
	}
	return &Script{name: name, l: l}, nil
}

func (x *Script) Close() {
	x.l.Close()
}

// Histogram copies the script's histogram table over h, leaving the fields
// the table does not mention untouched.
func (x *Script) Histogram(h *config.Histogram) error {
	tbl, ok := x.l.GetGlobal("histogram").(*lua.LTable)
	if !ok {
		return nil
	}
	if err := gluamapper.Map(tbl, h); err != nil {
		return merry.Prependf(err, "%s: histogram", x.name)
	}
	return nil
}

// Filter keeps the samples accepted by the script, in order. Without an
// accept function every sample is kept.
func (x *Script) Filter(samples []data.Sample) ([]data.Sample, error) {
	fn, ok := x.l.GetGlobal("accept").(*lua.LFunction)
	if !ok {
		return samples, nil
	}
	var xs []data.Sample
	for i := range samples {
		s := samples[i]
		err := x.l.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, luar.New(x.l, &s))
		if err != nil {
			return nil, merry.Prependf(err, "%s: accept sample %d %q", x.name, s.Index, s.Token)
		}
		ret := x.l.Get(-1)
		x.l.Pop(1)
		if lua.LVAsBool(ret) {
			xs = append(xs, samples[i])
		}
	}
	return xs, nil
}
