package dict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, input string) *Dict {
	t.Helper()
	d := New("test", 0)
	require.NoError(t, d.Parse([]byte(input)))
	return d
}

func TestParseLeaves(t *testing.T) {
	d := mustParse(t, `
		hostname router1;
		domain "example. com";
		standalone;
	`)

	n := d.Get("hostname")
	require.NotNil(t, n)
	assert.Equal(t, KindLeaf, n.Kind())
	assert.Equal(t, "router1", n.Value())

	n = d.Get("domain")
	require.NotNil(t, n)
	assert.Equal(t, "example. com", n.Value())
	assert.True(t, n.HasFlag(FlagQuotedValue))

	n = d.Get("standalone")
	require.NotNil(t, n)
	assert.Equal(t, KindLeaf, n.Kind())
	assert.Equal(t, "", n.Value())
}

func TestParseNestedBlocks(t *testing.T) {
	d := mustParse(t, `
		system {
			services {
				ssh;
				netconf {
					port 830;
				}
			}
		}
	`)

	n := d.Get("system/services/netconf/port")
	require.NotNil(t, n)
	assert.Equal(t, "830", n.Value())
	assert.Equal(t, KindBranch, d.Get("system").Kind())
	assert.Equal(t, KindLeaf, d.Get("system/services/ssh").Kind())
}

// what three or more consecutive tokens build depends only on their count
func TestParseTokenRuns(t *testing.T) {
	d := mustParse(t, `
		car vw model;
		car bmw model m3;
		tuning shocks bilstein dampening 40;
	`)

	car := d.Get("car")
	require.NotNil(t, car)
	assert.Equal(t, KindInstance, car.Kind())

	vw := d.Get("car/vw")
	require.NotNil(t, vw)
	assert.Equal(t, KindBranch, vw.Kind())
	model := d.Get("car/vw/model")
	require.NotNil(t, model)
	assert.Equal(t, "", model.Value())

	m := d.Get("car/bmw/model")
	require.NotNil(t, m)
	assert.Equal(t, "m3", m.Value())

	// five tokens: a branch of name/value pairs
	sh := d.Get("tuning")
	require.NotNil(t, sh)
	assert.Equal(t, KindBranch, sh.Kind())
	assert.Equal(t, "bilstein", d.Get("tuning/shocks").Value())
	assert.Equal(t, "40", d.Get("tuning/dampening").Value())
}

func TestParseTrailingPairToken(t *testing.T) {
	// six tokens: last one is a valueless leaf
	d := mustParse(t, "opts a 1 b 2 c;")
	assert.Equal(t, "1", d.Get("opts/a").Value())
	assert.Equal(t, "2", d.Get("opts/b").Value())
	n := d.Get("opts/c")
	require.NotNil(t, n)
	assert.Equal(t, "", n.Value())
}

func TestParseInstanceMerge(t *testing.T) {
	d := mustParse(t, `
		car vw {
			model golf;
		}
		car bmw {
			model m3;
		}
	`)

	car := d.Get("car")
	require.NotNil(t, car)
	assert.Equal(t, KindInstance, car.Kind())
	assert.Equal(t, 2, car.ChildCount())
	assert.Equal(t, "golf", d.Get("car/vw/model").Value())
	assert.Equal(t, "m3", d.Get("car/bmw/model").Value())
}

func TestParseValueConversion(t *testing.T) {
	// a second value for a taken name converts the leaf into an instance,
	// demoting the old value to a member
	d := mustParse(t, `
		host server1;
		host server2;
		host server3;
	`)

	host := d.Get("host")
	require.NotNil(t, host)
	assert.Equal(t, KindInstance, host.Kind())
	assert.Equal(t, "", host.Value())
	assert.Equal(t, 3, host.ChildCount())
	for _, name := range []string{"server1", "server2", "server3"} {
		require.NotNil(t, d.Get("host/"+name), name)
	}
}

func TestParseArrays(t *testing.T) {
	d := mustParse(t, `ports [ 80 443 "80 80" ];`)

	ports := d.Get("ports")
	require.NotNil(t, ports)
	assert.Equal(t, KindArray, ports.Kind())
	require.Equal(t, 3, ports.ChildCount())

	var vals []string
	for c := ports.FirstChild(); c != nil; c = c.Next() {
		vals = append(vals, c.Value())
	}
	assert.Equal(t, []string{"80", "443", "80 80"}, vals)

	// members are named by position
	assert.Equal(t, "443", d.Get("ports/1").Value())
}

func TestParseNestedArrays(t *testing.T) {
	d := mustParse(t, `matrix [ [ 1 2 ] [ 3 4 ] ];`)

	m := d.Get("matrix")
	require.NotNil(t, m)
	require.Equal(t, 2, m.ChildCount())
	row := m.FirstChild()
	assert.Equal(t, KindArray, row.Kind())
	assert.Equal(t, "2", d.Get("matrix/0/1").Value())
	assert.Equal(t, "3", d.Get("matrix/1/0").Value())
}

func TestParseArrayBlockMember(t *testing.T) {
	d := mustParse(t, `
		routes [
			{ dst 10.0.0.0/8; via 192.168.1.1; }
			{ dst 0.0.0.0/0; via 192.168.1.254; }
		];
	`)

	routes := d.Get("routes")
	require.NotNil(t, routes)
	require.Equal(t, 2, routes.ChildCount())
	assert.Equal(t, KindBranch, routes.FirstChild().Kind())
	assert.Equal(t, "10.0.0.0/8", d.Get("routes/0/dst").Value())
	assert.Equal(t, "192.168.1.254", d.Get("routes/1/via").Value())
}

func TestParseArrayPairDropsName(t *testing.T) {
	// two tokens before ';' inside an array keep only the second
	d := mustParse(t, `arr [ a b; ]`)
	arr := d.Get("arr")
	require.NotNil(t, arr)
	require.Equal(t, 1, arr.ChildCount())
	assert.Equal(t, "b", arr.FirstChild().Value())
}

func TestParseLongArray(t *testing.T) {
	// more members than the token cache holds; the cache flushes in place
	var in []byte
	in = append(in, "nums [ "...)
	for i := 0; i < 100; i++ {
		in = append(in, 'a'+byte(i%26), ' ')
	}
	in = append(in, "];"...)

	d := New("test", 0)
	require.NoError(t, d.Parse(in))
	assert.Equal(t, 100, d.Get("nums").ChildCount())
}

func TestParseModifier(t *testing.T) {
	d := mustParse(t, `
		inactive: limit 100;
		inactive: group {
			member a;
		}
		normal 1;
	`)

	n := d.Get("limit")
	require.NotNil(t, n)
	assert.True(t, n.HasFlag(FlagInactive))

	g := d.Get("group")
	require.NotNil(t, g)
	assert.True(t, g.HasFlag(FlagInactive))
	// children inherit the state as the inherited bit
	m := d.Get("group/member")
	require.NotNil(t, m)
	assert.False(t, m.HasFlag(FlagInactive))
	assert.True(t, m.HasFlag(FlagIInactive))

	assert.False(t, d.Get("normal").HasFlag(FlagInactive))
}

func TestParseQuotedModifierIsAName(t *testing.T) {
	d := mustParse(t, `"inactive:" x;`)
	n := d.Get("inactive:")
	require.NotNil(t, n)
	assert.Equal(t, "x", n.Value())
	assert.False(t, n.HasFlag(FlagInactive))
}

func TestParseTopLevelWrap(t *testing.T) {
	d := mustParse(t, `{ a 1; b { c 2; } }`)
	assert.Equal(t, "1", d.Get("a").Value())
	assert.Equal(t, "2", d.Get("b/c").Value())
}

func TestParseJSONish(t *testing.T) {
	d := mustParse(t, `{
		"interfaces": {
			"eth0": { "mtu": 9000, "up": true },
			"eth1": { "mtu": 1500 }
		},
		"tags": [ "edge", "lab" ]
	}`)

	assert.Equal(t, "9000", d.Get("interfaces/eth0/mtu").Value())
	assert.Equal(t, "true", d.Get("interfaces/eth0/up").Value())
	assert.Equal(t, "1500", d.Get("interfaces/eth1/mtu").Value())
	tags := d.Get("tags")
	require.NotNil(t, tags)
	assert.Equal(t, KindArray, tags.Kind())
	assert.Equal(t, "edge", d.Get("tags/0").Value())
}

func TestParsePartialSurvivesError(t *testing.T) {
	d := New("test", 0)
	err := d.Parse([]byte("good 1;\nbad $"))
	require.Error(t, err)
	// everything before the failure is still there
	require.NotNil(t, d.Get("good"))
	assert.Equal(t, "1", d.Get("good").Value())
}

func TestParseErrors(t *testing.T) {
	longRun := "a"
	for i := 0; i < maxTokens; i++ {
		longRun += " t"
	}
	longRun += ";"

	tests := []struct {
		name  string
		input string
		kind  ErrKind
	}{
		{"trailing token", "a b", ErrKindEOF},
		{"unclosed block", "a {", ErrKindUnbalanced},
		{"unclosed block nested", "a { b { c 1; }", ErrKindUnbalanced},
		{"stray block end", "}", ErrKindBlock},
		{"stray array end", "]", ErrKindBlock},
		{"block end in array", "a [ }", ErrKindBlock},
		{"array end in block", "a { ]", ErrKindBlock},
		{"unnamed array", "[ 1 2 ]", ErrKindExpectedName},
		{"unnamed nested block", "a { { } }", ErrKindExpectedName},
		{"token overflow", longRun, ErrKindTokens},
		{"too many before block", "a b c d {", ErrKindTokens},
		{"unterminated string", `a "b`, ErrKindUnterminatedString},
		{"unterminated comment", "a /* b", ErrKindUnterminatedComment},
		{"illegal byte", "a %;", ErrKindUnexpectedChar},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := New("test", 0)
			err := d.Parse([]byte(tc.input))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.kind, pe.Kind)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	d := New("test", 0)
	err := d.Parse([]byte("a 1;\nb $"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrKindUnexpectedChar, pe.Kind)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 2, pe.Pos)
	assert.Contains(t, pe.Error(), "line 2")
	assert.Contains(t, pe.Excerpt(), "^")
}

func TestParseUnterminatedReportsOpening(t *testing.T) {
	d := New("test", 0)
	err := d.Parse([]byte("ok 1;\nbad \"value\nmore lines\nhere"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrKindUnterminatedString, pe.Kind)
	assert.Equal(t, 2, pe.Line)
}

func TestParseNilDict(t *testing.T) {
	var d *Dict
	err := d.Parse([]byte("a;"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ErrKindNullDict, pe.Kind)
}

func TestParseNoIndex(t *testing.T) {
	d := New("test", NoIndex)
	require.NoError(t, d.Parse([]byte("a { b { c 1; } }")))
	n := d.Get("a/b/c")
	require.NotNil(t, n)
	assert.Equal(t, "1", n.Value())
}
