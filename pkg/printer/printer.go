package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cast"
	"github.com/valyala/bytebufferpool"

	"github.com/scottcagno/hashtable/pkg/hashmap/chained"
)

// Snapshotter is implemented by tables that can hand out a copy of
// their bucket layout
type Snapshotter[V any] interface {
	Buckets() [][]chained.Entry[V]
}

// Fprint writes one line per bucket, listing the chain in order:
//
//	[0] apple=1 pear=7
//	[1] -
func Fprint[V any](w io.Writer, buckets [][]chained.Entry[V]) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for i, chain := range buckets {
		buf.WriteString("[")
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString("]")
		if len(chain) == 0 {
			buf.WriteString(" -")
		}
		for _, e := range chain {
			buf.WriteString(" ")
			buf.WriteString(e.Key)
			buf.WriteString("=")
			buf.WriteString(FormatValue(e.Value))
		}
		buf.WriteString("\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

// FormatValue renders a value for display. Anything cast can not turn
// into a string falls back to its %v form.
func FormatValue(v interface{}) string {
	if v == nil {
		return "<nil>"
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// FprintStats writes a one line summary of a table
func FprintStats(w io.Writer, st chained.Stats) error {
	_, err := fmt.Fprintf(w, "elements=%s buckets=%s load=%.2f longest_chain=%d empty=%s resizes=%d\n",
		humanize.Comma(int64(st.Elements)),
		humanize.Comma(int64(st.Buckets)),
		st.LoadFactor,
		st.LongestChain,
		humanize.Comma(int64(st.EmptyBuckets)),
		st.Resizes,
	)
	return err
}
