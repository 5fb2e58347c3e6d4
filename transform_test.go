package usghole

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHostEntry(t *testing.T) {
	tests := []struct {
		line   string
		domain string
		ok     bool
	}{
		{"0.0.0.0 ads.example.com", "ads.example.com", true},
		{"127.0.0.1 tracker.example.net", "tracker.example.net", true},
		{"0.0.0.0   spaced.example.com  ", "spaced.example.com", true},
		{"tracker.example.net", "tracker.example.net", true},
		{"ADS.Example.COM.", "ads.example.com", true},
		{"192.168.1.1 router.example.com", "192.168.1.1", true},
		{"0.0.0.0", "", false},
		{"127.0.0.1", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, test := range tests {
		domain, err := ParseHostEntry(test.line)
		if !test.ok {
			require.Error(t, err, "line: %q", test.line)
			var entryErr *MalformedEntryError
			require.ErrorAs(t, err, &entryErr, "line: %q", test.line)
			continue
		}
		require.NoError(t, err, "line: %q", test.line)
		require.Equal(t, test.domain, domain, "line: %q", test.line)
	}
}

func TestTransform(t *testing.T) {
	doc := Normalize([]string{
		"0.0.0.0 ads.example.com",
		"0.0.0.0 ads.example.com",
		"tracker.example.net",
	})
	require.Equal(t, []string{"0.0.0.0 ads.example.com", "tracker.example.net"}, doc)

	v4, v6 := Transform(doc, TransformOptions{})
	require.Equal(t, []string{
		"address=/ads.example.com/0.0.0.0/",
		"address=/tracker.example.net/0.0.0.0/",
	}, v4)
	require.Equal(t, []string{
		"address=/ads.example.com/::1/",
		"address=/tracker.example.net/::1/",
	}, v6)
}

func TestTransformCustomTargets(t *testing.T) {
	v4, v6 := Transform([]string{"ads.example.com"}, TransformOptions{TargetV4: "127.0.0.1", TargetV6: "::"})
	require.Equal(t, []string{"address=/ads.example.com/127.0.0.1/"}, v4)
	require.Equal(t, []string{"address=/ads.example.com/::/"}, v6)
}

func TestTransformSkipsMalformed(t *testing.T) {
	v4, v6 := Transform([]string{
		"0.0.0.0",
		"ads.example.com",
		"127.0.0.1",
	}, TransformOptions{})
	require.Equal(t, []string{"address=/ads.example.com/0.0.0.0/"}, v4)
	require.Equal(t, []string{"address=/ads.example.com/::1/"}, v6)
}

func TestTransformEmpty(t *testing.T) {
	v4, v6 := Transform(nil, TransformOptions{})
	require.Empty(t, v4)
	require.Empty(t, v6)
}
