package present_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/present"
	"gopkg.in/yaml.v3"
)

var encodeNow = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func TestEncode_JSON(t *testing.T) {
	p := newPresenter(t, "en")
	var buf bytes.Buffer

	require.NoError(t, p.Encode(&buf, config.FormatJSON, sampleReport(t), encodeNow))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "1990-06-20", got["birth_date"])
	assert.EqualValues(t, 33, got["years"])
	assert.EqualValues(t, 8, got["months"])
	assert.EqualValues(t, 25, got["days"])
	assert.EqualValues(t, 1064620800, got["total_seconds"])
	assert.Equal(t, "Gemini", got["zodiac"])
	assert.Equal(t, "Wednesday", got["born_on"])
	assert.Equal(t, "en", got["language"])

	next, ok := got["next_birthday"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-06-20", next["date"])
	assert.EqualValues(t, 97, next["days_until"])
}

func TestEncode_YAML(t *testing.T) {
	p := newPresenter(t, "fr")
	var buf bytes.Buffer

	require.NoError(t, p.Encode(&buf, config.FormatYAML, sampleReport(t), encodeNow))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 33, got["years"], "Report fields are inlined at the top level")
	assert.Equal(t, "1990-06-20", got["birth_date"])
	assert.Equal(t, "mercredi", got["born_on"])
	assert.Equal(t, "fr", got["language"])
	assert.NotContains(t, got, "weekday", "Weekday is exposed through born_on only")
}

func TestEncode_ICS(t *testing.T) {
	p := newPresenter(t, "fr")
	var buf bytes.Buffer

	require.NoError(t, p.Encode(&buf, config.FormatICS, sampleReport(t), encodeNow))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "Anniversaire (34 ans)")
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"))
}

func TestEncode_Text(t *testing.T) {
	p := newPresenter(t, "en")
	var buf bytes.Buffer

	require.NoError(t, p.Encode(&buf, config.FormatText, sampleReport(t), encodeNow))

	out := buf.String()
	assert.Contains(t, out, "You are 33 years, 8 months, and 25 days old\n")
	assert.Contains(t, out, "Seconds: 1,064,620,800\n")
	assert.Contains(t, out, "Next Birthday: 97 days away\n")
	assert.True(t, strings.HasSuffix(out, "Seconds: 1,064,620,800\n"), "Seconds is the last line")
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	p := newPresenter(t, "en")

	err := p.Encode(&bytes.Buffer{}, "xml", sampleReport(t), encodeNow)
	assert.ErrorIs(t, err, present.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "xml")
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml", "ics"}, present.Formats())
}

func TestTextSurface_PatchAndErrors(t *testing.T) {
	p := newPresenter(t, "en")
	var out, errOut bytes.Buffer
	s := present.NewTextSurface(&out, &errOut)

	p.Render(s, sampleReport(t))
	out.Reset()

	p.PatchElapsed(s, 1064620801)
	assert.Equal(t, "\rSeconds: 1,064,620,801", out.String())

	p.RenderError(s, assert.AnError)
	assert.Equal(t, "An error occurred while calculating your age\n", errOut.String())
}

func TestLiveTextSurface_PatchesLastLine(t *testing.T) {
	p := newPresenter(t, "en")
	var out bytes.Buffer
	s := present.NewLiveTextSurface(&out, &bytes.Buffer{})

	p.Render(s, sampleReport(t))
	p.PatchElapsed(s, 1064620801)

	text := out.String()
	assert.True(t, strings.HasSuffix(text, "Seconds: 1,064,620,800\rSeconds: 1,064,620,801"),
		"The patch overwrites the unterminated seconds line")
	assert.NotContains(t, text, "\n\r")
}
