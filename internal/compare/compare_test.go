package compare

import (
	"errors"
	"testing"

	"github.com/retroenv/gbmemdump/internal/memory"
	"github.com/retroenv/gbmemdump/internal/region"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestImages(t *testing.T) {
	logger := log.NewTestLogger(t)

	data := make([]byte, region.AddressSpaceSize)
	expected, err := memory.New(data)
	assert.NoError(t, err)

	data[0x0001] = 0x01
	data[0x8000] = 0x02
	data[0x8010] = 0x03
	data[0xFEA0] = 0x04
	data[0xFFFF] = 0x05
	got, err := memory.New(data)
	assert.NoError(t, err)

	result, err := Images(logger, region.GameBoy(), expected, got)
	assert.NoError(t, err)
	assert.False(t, result.Equal())
	assert.Equal(t, 5, result.Total)

	assert.Equal(t, []RegionDiff{
		{Name: region.ROMBank00, Diffs: 1, FirstOffset: 0x0001},
		{Name: region.VideoRAM, Diffs: 2, FirstOffset: 0x8000},
		{Name: region.InterruptEnableRegister, Diffs: 1, FirstOffset: 0xFFFF},
		{Name: region.Unmapped, Diffs: 1, FirstOffset: 0xFEA0},
	}, result.Regions)
}

func TestImagesEqual(t *testing.T) {
	logger := log.NewTestLogger(t)

	img, err := memory.New(make([]byte, 0x100))
	assert.NoError(t, err)

	result, err := Images(logger, region.GameBoy(), img, img)
	assert.NoError(t, err)
	assert.True(t, result.Equal())
	assert.Len(t, result.Regions, 0)
}

func TestImagesLengthMismatch(t *testing.T) {
	logger := log.NewTestLogger(t)

	a, err := memory.New(make([]byte, 0x100))
	assert.NoError(t, err)
	b, err := memory.New(make([]byte, 0x200))
	assert.NoError(t, err)

	_, err = Images(logger, region.GameBoy(), a, b)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}
