package usghole

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	checkErr error
	reloads  int
}

func (r *fakeReloader) Check() error  { return r.checkErr }
func (r *fakeReloader) Reload() error { r.reloads++; return nil }

func testPipeline(t *testing.T, loaders []Loader) (*Pipeline, *fakeReloader) {
	t.Helper()
	liveDir := t.TempDir()
	reloader := &fakeReloader{}
	p := &Pipeline{
		Loaders: loaders,
		Generation: Generation{
			IPv4Path: filepath.Join(liveDir, "blackhole.ipv4.conf"),
			IPv6Path: filepath.Join(liveDir, "blackhole.ipv6.conf"),
		},
		Rotator:  NewRotator(t.TempDir(), "dnsmasq.blackhole", 5),
		Reloader: reloader,
	}
	return p, reloader
}

func TestPipelineRun(t *testing.T) {
	p, reloader := testPipeline(t, []Loader{
		NewStaticLoader("list1", []string{
			"0.0.0.0 ads.example.com",
			"0.0.0.0 ads.example.com",
		}),
		NewStaticLoader("list2", []string{
			"tracker.example.net",
		}),
	})

	require.NoError(t, p.Run())
	require.Equal(t, 1, reloader.reloads)

	b, err := os.ReadFile(p.Generation.IPv4Path)
	require.NoError(t, err)
	require.Equal(t, "address=/ads.example.com/0.0.0.0/\naddress=/tracker.example.net/0.0.0.0/\n", string(b))
	b, err = os.ReadFile(p.Generation.IPv6Path)
	require.NoError(t, err)
	require.Equal(t, "address=/ads.example.com/::1/\naddress=/tracker.example.net/::1/\n", string(b))

	// First run has no previous generation, so nothing is archived
	_, err = p.Rotator.Last(FamilyIPv4)
	require.Error(t, err)

	// The second run archives the first run's files before replacing them
	firstGen := string(b)
	p.Loaders = []Loader{NewStaticLoader("list1", []string{"0.0.0.0 other.example.com"})}
	require.NoError(t, p.Run())
	require.Equal(t, 2, reloader.reloads)

	for _, family := range []string{FamilyIPv4, FamilyIPv6} {
		last, err := p.Rotator.Last(family)
		require.NoError(t, err)
		_, err = os.Stat(last)
		require.NoError(t, err)
	}
	last, err := p.Rotator.Last(FamilyIPv6)
	require.NoError(t, err)
	b, err = os.ReadFile(last)
	require.NoError(t, err)
	require.Equal(t, firstGen, string(b))

	b, err = os.ReadFile(p.Generation.IPv4Path)
	require.NoError(t, err)
	require.Equal(t, "address=/other.example.com/0.0.0.0/\n", string(b))
}

func TestPipelineEmptyInput(t *testing.T) {
	p, reloader := testPipeline(t, []Loader{NewStaticLoader("empty", nil)})
	require.NoError(t, p.Run())
	require.Equal(t, 1, reloader.reloads)

	for _, family := range []string{FamilyIPv4, FamilyIPv6} {
		require.True(t, p.Generation.Exists(family))
	}
	b, err := os.ReadFile(p.Generation.IPv4Path)
	require.NoError(t, err)
	require.Empty(t, string(b))
}

func TestPipelinePartialFetchFailure(t *testing.T) {
	p, _ := testPipeline(t, []Loader{
		NewStaticLoader("list1", []string{"0.0.0.0 ads.example.com"}),
		&failLoader{"list2"},
	})
	require.NoError(t, p.Run())

	b, err := os.ReadFile(p.Generation.IPv4Path)
	require.NoError(t, err)
	require.Equal(t, "address=/ads.example.com/0.0.0.0/\n", string(b))
}

func TestPipelineAllSourcesFail(t *testing.T) {
	p, reloader := testPipeline(t, []Loader{&failLoader{"list1"}})
	require.Error(t, p.Run())
	require.Zero(t, reloader.reloads)
	require.False(t, p.Generation.Exists(FamilyIPv4))
}

func TestPipelineMissingDependency(t *testing.T) {
	p, reloader := testPipeline(t, []Loader{NewStaticLoader("list1", []string{"ads.example.com"})})
	reloader.checkErr = &MissingDependencyError{Name: "dnsmasq"}

	err := p.Run()
	var depErr *MissingDependencyError
	require.ErrorAs(t, err, &depErr)

	// Nothing may be written if the reload dependency is absent
	require.False(t, p.Generation.Exists(FamilyIPv4))
	require.False(t, p.Generation.Exists(FamilyIPv6))
}
