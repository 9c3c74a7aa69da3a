package search

import (
	"testing"

	"github.com/jpl-au/tgrep/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestComputeDigestsStableAcrossRuns(t *testing.T) {
	build := func() model.Matches {
		return model.Matches{
			Dirs: model.Arena{
				{Path: "/root", Children: []int{}, Files: []model.File{
					{Path: "/root/a.txt", Lines: []model.Line{{Content: "hello", Number: 1}}},
				}},
			},
		}
	}

	first := ComputeDigests(build())
	second := ComputeDigests(build())
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestComputeDigestsSetsPerFileDigest(t *testing.T) {
	m := model.Matches{
		Dirs: model.Arena{
			{Path: "/root", Files: []model.File{
				{Path: "/root/a.txt", Lines: []model.Line{{Content: "x", Number: 1}}},
			}},
		},
	}
	ComputeDigests(m)
	assert.NotNil(t, m.Dirs[0].Files[0].Digest())
}

func TestComputeDigestsSingleFile(t *testing.T) {
	f := model.File{Path: "/root/a.txt", Lines: []model.Line{{Content: "x", Number: 1}}}
	m := model.Matches{File: &f}
	digest := ComputeDigests(m)
	assert.NotEmpty(t, digest)
	assert.NotNil(t, f.Digest())
}
