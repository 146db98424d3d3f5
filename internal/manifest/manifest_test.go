package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	in := `# Speech recognition
faster-whisper>=1.0.3

openai-whisper>=20231117
  # indented comment
gradio>=4.36.1
`
	reqs, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, "faster-whisper", reqs[0].Name)
	assert.Equal(t, "1.0.3", reqs[0].Version)
	assert.Equal(t, 2, reqs[0].Line)

	assert.Equal(t, "openai-whisper", reqs[1].Name)
	assert.Equal(t, "20231117", reqs[1].Version)

	assert.Equal(t, "gradio>=4.36.1", reqs[2].String())
}

func TestParseKeepsOrderAndDuplicates(t *testing.T) {
	in := "b>=2.0\na>=1.0\nb>=3.0\n"

	reqs, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	// порядок и дубликаты сохраняются, конфликтами занимается внешний резолвер
	assert.Equal(t, "b", reqs[0].Name)
	assert.Equal(t, "a", reqs[1].Name)
	assert.Equal(t, "b", reqs[2].Name)
	assert.Equal(t, "3.0", reqs[2].Version)
}

func TestParseCRLF(t *testing.T) {
	in := "# comment\r\ntorch>=2.3.0\r\n\r\nnumpy>=1.26.4\r\n"

	reqs, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "torch", reqs[0].Name)
	assert.Equal(t, "2.3.0", reqs[0].Version)
}

func TestParseWhitespaceTolerance(t *testing.T) {
	reqs, err := Parse(strings.NewReader("  soundfile >= 0.12.1  \n"))
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "soundfile", reqs[0].Name)
	assert.Equal(t, "0.12.1", reqs[0].Version)
}

func TestParseEmpty(t *testing.T) {
	reqs, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, reqs)

	reqs, err = Parse(strings.NewReader("\n# only comments\n\n"))
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
	}{
		{"no operator", "torch\n", 1},
		{"wrong operator", "torch==2.3.0\n", 1},
		{"empty version", "a>=1.0\ntorch>=\n", 2},
		{"empty name", ">=1.0\n", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in))
			require.Error(t, err)

			pe, ok := err.(*ParseError)
			require.True(t, ok, "expected *ParseError, got %T", err)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestFindNormalized(t *testing.T) {
	m := &Manifest{Requirements: []Requirement{
		{Name: "faster-whisper", Version: "1.0.3"},
		{Name: "ffmpeg_python", Version: "0.2.0"},
	}}

	r, ok := m.Find("Faster_Whisper")
	require.True(t, ok)
	assert.Equal(t, "1.0.3", r.Version)

	r, ok = m.Find("ffmpeg-python")
	require.True(t, ok)
	assert.Equal(t, "0.2.0", r.Version)

	_, ok = m.Find("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())

	var nilM *Manifest
	assert.Equal(t, 0, nilM.Len())
}
