package dict

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot flattens a dictionary to path -> kind/value for comparisons.
func snapshot(d *Dict) map[string]string {
	out := map[string]string{}
	d.WalkPaths(func(path string, n *Node) bool {
		out[path] = fmt.Sprintf("%s=%s", n.Kind(), n.Value())
		return true
	})
	return out
}

func TestDumpLeaf(t *testing.T) {
	d := mustParse(t, "hostname router1;")
	assert.Equal(t, "hostname router1;\n", d.String())
}

func TestDumpBlock(t *testing.T) {
	d := mustParse(t, "system { host r1; port 22; }")
	want := strings.Join([]string{
		"system {",
		"    host r1;",
		"    port 22;",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, d.String())
}

func TestDumpQuoting(t *testing.T) {
	d := mustParse(t, `motd "line one\nline \"two\"";`)
	out := d.String()
	assert.Equal(t, `motd "line one\nline \"two\"";`+"\n", out)
}

func TestDumpQuotesUnsafeNames(t *testing.T) {
	// names created through the API may hold bytes a bare token cannot
	d := New("test", 0)
	n, err := d.CreateNode(d.Root(), KindLeaf, "two words")
	require.NoError(t, err)
	require.NoError(t, d.SetValue(n, "a;b"))

	out := d.String()
	assert.Equal(t, `"two words" "a;b";`+"\n", out)

	rt := New("rt", 0)
	require.NoError(t, rt.Parse([]byte(out)))
	assert.Equal(t, "a;b", rt.Get(`two\ words`).Value())
}

func TestDumpArray(t *testing.T) {
	d := mustParse(t, `ports [ 80 443 "80 80" ];`)
	assert.Equal(t, `ports [ 80 443 "80 80" ];`+"\n", d.String())
}

func TestDumpInstanceInline(t *testing.T) {
	// instance members with a single leaf collapse to one line
	d := mustParse(t, "car vw model golf;\ncar bmw model m3;\n")
	out := d.String()
	assert.Contains(t, out, "car vw model golf;\n")
	assert.Contains(t, out, "car bmw model m3;\n")
}

func TestDumpSubtree(t *testing.T) {
	d := mustParse(t, "a { b { c 1; } d 2; }")
	var sb strings.Builder
	require.NoError(t, d.Get("a/b").Dump(&sb))
	assert.Equal(t, "b {\n    c 1;\n}\n", sb.String())
}

func TestDumpRoundTrip(t *testing.T) {
	inputs := []string{
		"hostname r1; domain \"example. com\";",
		"system { services { ssh { port 22; } netconf; } }",
		"car vw model golf;\ncar bmw { model m3; doors 2; }",
		"host server1; host server2;",
		"ports [ 80 443 8080 ]; matrix [ [ 1 2 ] [ 3 4 ] ];",
		"routes [ { dst 10.0.0.0/8; via gw1; } { dst 0.0.0.0/0; via gw2; } ];",
		"inactive: spare { x 1; }",
		`esc "tab\there" "q\"uote";`,
		"opts a 1 b 2 c;",
	}
	for _, in := range inputs {
		t.Run(in[:min(len(in), 24)], func(t *testing.T) {
			d1 := mustParse(t, in)
			text := d1.String()

			d2 := New("rt", 0)
			require.NoError(t, d2.Parse([]byte(text)), "re-parse of:\n%s", text)
			assert.Equal(t, snapshot(d1), snapshot(d2), "round trip of:\n%s", text)
		})
	}
}

func TestDumpWriterError(t *testing.T) {
	d := mustParse(t, "a { b 1; }")
	err := d.Dump(failWriter{})
	assert.Error(t, err)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("sink closed")
}
