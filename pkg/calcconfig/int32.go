package calcconfig

import (
	"flag"
	"strconv"
)

// Int32 defines an int32 flag on fs. Values outside the int32 range are
// rejected when parsed, whether they come from the command line, the
// environment or a config file.
func Int32(fs *flag.FlagSet, name string, value int32, usage string) *int32 {
	p := new(int32)
	*p = value
	fs.Var((*int32Value)(p), name, usage)
	return p
}

type int32Value int32

func (i *int32Value) Set(s string) error {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return err
	}
	*i = int32Value(v)
	return nil
}

func (i *int32Value) String() string {
	if i == nil {
		return "0"
	}
	return strconv.FormatInt(int64(*i), 10)
}
