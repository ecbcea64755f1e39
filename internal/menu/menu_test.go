package menu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soundtest/internal/console"
	"soundtest/internal/pad"
	"soundtest/internal/tad"
)

func newTestMenu() (*Menu, *tad.Recorder, *console.Grid) {
	rec := &tad.Recorder{}
	grid := console.New()
	m := New(rec, grid, tad.Project{LastSong: 5, SoundEffects: 8})
	rec.Reset() // drop the init-time stereo/start-mode calls
	return m, rec, grid
}

// frame runs one frame with the given buttons down.
func frame(m *Menu, p *pad.State, down pad.Button) {
	p.Update(down)
	m.Process(p)
}

// press taps a button: one frame down, one frame released.
func press(m *Menu, p *pad.State, b pad.Button) {
	frame(m, p, b)
	frame(m, p, 0)
}

func moveTo(m *Menu, p *pad.State, it Item) {
	for m.Pos() != it {
		press(m, p, pad.Down)
	}
}

// selectedRows returns the items whose row carries the selected
// attribute. Column 0 is never recolored by the channel digits, so it
// reflects the row highlight alone.
func selectedRows(g *console.Grid) []Item {
	var rows []Item
	for it := Item(0); it < NumItems; it++ {
		if g.Attr(0, itemRow(it)) == console.PalSelected {
			rows = append(rows, it)
		}
	}
	return rows
}

func readStateLabel(g *console.Grid) string {
	return g.Row(stateY)[stateX : stateX+7]
}

func TestCursorWrapsAround(t *testing.T) {
	m, _, _ := newTestMenu()
	p := &pad.State{}

	require.Equal(t, ItemPlaySong, m.Pos())

	press(m, p, pad.Up)
	assert.Equal(t, ItemReloadCommonAudioData, m.Pos(), "up from first item wraps to last")

	press(m, p, pad.Down)
	assert.Equal(t, ItemPlaySong, m.Pos(), "down from last item wraps to first")

	for i := 0; i < NumItems; i++ {
		press(m, p, pad.Down)
	}
	assert.Equal(t, ItemPlaySong, m.Pos(), "a full cycle returns to the start")
}

func TestExactlyOneRowHighlighted(t *testing.T) {
	m, _, grid := newTestMenu()
	p := &pad.State{}

	moves := []pad.Button{
		pad.Down, pad.Down, pad.Up, pad.Down, pad.Down, pad.Down,
		pad.Up, pad.Up, pad.Up, pad.Up, pad.Down, pad.Up, pad.Up,
	}
	for _, b := range moves {
		press(m, p, b)
		rows := selectedRows(grid)
		require.Len(t, rows, 1, "exactly one highlighted row after every move")
		assert.Equal(t, m.Pos(), rows[0])
		assert.Equal(t, byte('>'), grid.CharAt(cursorX, itemRow(m.Pos())))
	}
}

func TestChannelBitCycle(t *testing.T) {
	m, _, _ := newTestMenu()
	p := &pad.State{}
	moveTo(m, p, ItemChannelMask)

	for i := 0; i < 8; i++ {
		assert.Equal(t, uint8(1)<<i, m.SelectedBit())
		press(m, p, pad.Right)
	}
	assert.Equal(t, uint8(1), m.SelectedBit(), "right from bit 7 wraps to bit 0")

	press(m, p, pad.Left)
	assert.Equal(t, uint8(0x80), m.SelectedBit(), "left from bit 0 wraps to bit 7")
	for i := 7; i >= 0; i-- {
		assert.Equal(t, uint8(1)<<i, m.SelectedBit())
		press(m, p, pad.Left)
	}
}

func TestChannelToggleFlipsSingleBit(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}
	moveTo(m, p, ItemChannelMask)

	press(m, p, pad.Right) // select bit 1
	rec.Reset()

	press(m, p, pad.A)
	assert.Equal(t, uint8(0xfd), m.ChannelMask(), "only the selected bit flips")

	var overrides []tad.Call
	for _, c := range rec.Filter("QueueOverride") {
		if c.Cmd == tad.CmdSetMusicChannels {
			overrides = append(overrides, c)
		}
	}
	require.Len(t, overrides, 1, "one channel-mask override per toggle")
	assert.Equal(t, uint8(0xfd), overrides[0].Param)

	press(m, p, pad.A)
	assert.Equal(t, uint8(0xff), m.ChannelMask(), "toggling again restores the bit")
}

func TestChannelMaskColors(t *testing.T) {
	m, rec, grid := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}
	moveTo(m, p, ItemChannelMask)
	y := itemRow(ItemChannelMask)

	assert.Equal(t, console.PalSelectedEnabledChannel, grid.Attr(channelMaskX, y))
	for i := 1; i < 8; i++ {
		assert.Equal(t, console.PalEnabledChannel, grid.Attr(channelMaskX+i, y))
	}

	press(m, p, pad.A) // disable channel 0
	assert.Equal(t, console.PalSelectedDisabledChannel, grid.Attr(channelMaskX, y))

	press(m, p, pad.Right) // move selection off the disabled digit
	assert.Equal(t, console.PalDisabledChannel, grid.Attr(channelMaskX, y))
	assert.Equal(t, console.PalSelectedEnabledChannel, grid.Attr(channelMaskX+1, y))

	// Selection is only shown while the cursor is on the mask row.
	press(m, p, pad.Down)
	assert.Equal(t, console.PalEnabledChannel, grid.Attr(channelMaskX+1, y))
}

func TestValueBounds(t *testing.T) {
	tests := []struct {
		name     string
		item     Item
		min, max uint8
		fast     bool
	}{
		{"song id", ItemPlaySong, 0, 5, false},
		{"sfx id", ItemPlaySfx, 0, 7, false},
		{"sfx pan", ItemSfxPan, 0, tad.MaxPan, true},
		{"main volume", ItemMainVolume, 0, tad.MaxVolume, true},
		{"tempo override", ItemOverrideTempo, tad.MinTickClock, 255, true},
	}

	value := func(m *Menu, it Item) uint8 {
		switch it {
		case ItemPlaySong:
			return m.Song()
		case ItemPlaySfx:
			return m.Sfx()
		case ItemSfxPan:
			return m.SfxPan()
		case ItemMainVolume:
			return m.MainVolume()
		default:
			return m.TempoOverride()
		}
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec, _ := newTestMenu()
			rec.SongLoaded = true
			p := &pad.State{}
			moveTo(m, p, tt.item)

			hold := func(b pad.Button, frames int) {
				for i := 0; i < frames; i++ {
					if tt.fast {
						frame(m, p, b)
					} else {
						press(m, p, b)
					}
				}
			}

			hold(pad.Left, 300)
			assert.Equal(t, tt.min, value(m, tt.item), "clamped at minimum, no wraparound")

			hold(pad.Right, 300)
			assert.Equal(t, tt.max, value(m, tt.item), "clamped at maximum, no wraparound")
		})
	}
}

func TestSlowAdjustIsEdgeTriggered(t *testing.T) {
	m, _, _ := newTestMenu()
	p := &pad.State{}

	// Hold RIGHT for three frames on the song row.
	for i := 0; i < 3; i++ {
		frame(m, p, pad.Right)
	}
	assert.Equal(t, uint8(1), m.Song(), "slow adjustment reacts to the edge only")
}

func TestFastAdjustRepeatsWhileHeld(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}
	moveTo(m, p, ItemSfxPan)

	for i := 0; i < 3; i++ {
		frame(m, p, pad.Right)
	}
	assert.Equal(t, uint8(tad.CenterPan+3), m.SfxPan())
}

func TestVolumeHeldNotifiesDriverEveryFrame(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}
	moveTo(m, p, ItemMainVolume)
	require.Equal(t, uint8(127), m.MainVolume())
	rec.Reset()

	for i := 0; i < 3; i++ {
		frame(m, p, pad.Left)
	}

	assert.Equal(t, uint8(124), m.MainVolume())

	var queued []tad.Call
	for _, c := range rec.Filter("Queue") {
		if c.Cmd == tad.CmdSetMainVolume {
			queued = append(queued, c)
		}
	}
	require.Len(t, queued, 3, "one live volume command per changed frame")
	for i, c := range queued {
		assert.Equal(t, uint8(126-i), c.Param)
	}
}

func TestIdleAutoReset(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}

	moveTo(m, p, ItemMainVolume)
	frame(m, p, pad.Left)
	frame(m, p, 0)
	require.Equal(t, uint8(126), m.MainVolume())

	moveTo(m, p, ItemChannelMask)
	press(m, p, pad.A)
	require.Equal(t, uint8(0xfe), m.ChannelMask())

	// Song unloads: one idle frame restores the safe defaults.
	rec.SongLoaded = false
	frame(m, p, 0)
	assert.Equal(t, uint8(127), m.MainVolume())
	assert.Equal(t, uint8(0xff), m.ChannelMask())
}

func TestStateLabelPriority(t *testing.T) {
	tests := []struct {
		name                         string
		playing, sfx, loaded, loader bool
		want                         string
	}{
		{"playing wins over everything", true, true, true, true, "PLAYING"},
		{"sfx wins over paused", false, true, true, false, "SFX    "},
		{"loaded but not playing is paused", false, false, true, false, "PAUSED "},
		{"loader active", false, false, false, true, "LOADING"},
		{"nothing going on", false, false, false, false, "......."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec, grid := newTestMenu()
			rec.SongPlaying = tt.playing
			rec.SfxPlaying = tt.sfx
			rec.SongLoaded = tt.loaded
			rec.LoaderActive = tt.loader

			p := &pad.State{}
			frame(m, p, 0)

			assert.Equal(t, tt.want, readStateLabel(grid))
			assert.Equal(t, console.PalState, grid.Attr(stateX, stateY))
		})
	}
}

func TestPauseUnpauseShortcut(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}

	rec.SongPlaying = true
	rec.Reset()
	press(m, p, pad.Start)
	queued := rec.Filter("Queue")
	require.Len(t, queued, 1)
	assert.Equal(t, tad.CmdPauseMusicPlaySfx, queued[0].Cmd)

	rec.SongPlaying = false
	rec.Reset()
	press(m, p, pad.Start)
	overrides := rec.Filter("QueueOverride")
	require.Len(t, overrides, 1)
	assert.Equal(t, tad.CmdUnpause, overrides[0].Cmd)
}

func TestStopSfxShortcut(t *testing.T) {
	m, rec, _ := newTestMenu()
	p := &pad.State{}

	press(m, p, pad.X)
	overrides := rec.Filter("QueueOverride")
	require.Len(t, overrides, 1)
	assert.Equal(t, tad.CmdStopSoundEffects, overrides[0].Cmd)
}

func TestActionDispatch(t *testing.T) {
	tests := []struct {
		item      Item
		wantName  string
		wantCmd   tad.Command
		wantParam uint8
	}{
		{ItemPlaySong, "LoadSong", 0, 0},
		{ItemPlaySfx, "QueuePannedSoundEffect", 0, 0},
		{ItemSfxPan, "QueuePannedSoundEffect", 0, 0},
		{ItemMainVolume, "QueueOverride", tad.CmdSetMainVolume, 127},
		{ItemOverrideTempo, "QueueOverride", tad.CmdSetSongTimer, 100},
		{ItemStereoFlag, "SetMono", 0, 0},
		{ItemSongStartsFlag, "SongsStartPaused", 0, 0},
		{ItemStopSoundEffects, "QueueOverride", tad.CmdStopSoundEffects, 0},
		{ItemPauseUnpauseMusic, "QueueOverride", tad.CmdUnpause, 0},
		{ItemPauseMusicAndSfx, "Queue", tad.CmdPause, 0},
		{ItemReloadCommonAudioData, "ReloadCommonAudioData", 0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("item_%d_%s", tt.item, tt.wantName), func(t *testing.T) {
			m, rec, _ := newTestMenu()
			rec.SongLoaded = true
			p := &pad.State{}
			moveTo(m, p, tt.item)
			rec.Reset()

			press(m, p, pad.A)

			calls := rec.Filter(tt.wantName)
			require.NotEmpty(t, calls, "expected a %s call", tt.wantName)
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantCmd, calls[0].Cmd)
			assert.Equal(t, tt.wantParam, calls[0].Param)
		})
	}
}

func TestSfxActionUsesCurrentPan(t *testing.T) {
	m, rec, _ := newTestMenu()
	rec.SongLoaded = true
	p := &pad.State{}

	moveTo(m, p, ItemSfxPan)
	for i := 0; i < 4; i++ {
		frame(m, p, pad.Right)
	}
	frame(m, p, 0)
	rec.Reset()

	press(m, p, pad.B)
	calls := rec.Filter("QueuePannedSoundEffect")
	require.Len(t, calls, 1)
	assert.Equal(t, uint8(0), calls[0].Param)
	assert.Equal(t, uint8(tad.CenterPan+4), calls[0].Arg2)
}

func TestStereoToggle(t *testing.T) {
	m, rec, grid := newTestMenu()
	p := &pad.State{}
	moveTo(m, p, ItemStereoFlag)
	require.True(t, m.Stereo())

	press(m, p, pad.Left)
	assert.False(t, m.Stereo())
	assert.Contains(t, grid.Row(itemRow(ItemStereoFlag)), "MONO")
	assert.NotEmpty(t, rec.Filter("SetMono"))

	press(m, p, pad.Right)
	assert.True(t, m.Stereo())
	assert.Contains(t, grid.Row(itemRow(ItemStereoFlag)), "STEREO")
	assert.NotEmpty(t, rec.Filter("SetStereo"))
}

func TestSongStartModeToggle(t *testing.T) {
	m, rec, grid := newTestMenu()
	p := &pad.State{}
	moveTo(m, p, ItemSongStartsFlag)
	require.True(t, m.SongsStartImmediately())

	press(m, p, pad.Right)
	assert.False(t, m.SongsStartImmediately())
	assert.Contains(t, grid.Row(itemRow(ItemSongStartsFlag)), "SONGS START PAUSED")
	assert.NotEmpty(t, rec.Filter("SongsStartPaused"))
}

func TestActionRowsIgnoreLeftRight(t *testing.T) {
	m, rec, _ := newTestMenu()
	p := &pad.State{}
	moveTo(m, p, ItemStopSoundEffects)
	rec.Reset()

	press(m, p, pad.Left)
	press(m, p, pad.Right)
	assert.Empty(t, rec.Calls, "action rows have no adjustable value")
}

func TestOutOfRangeIndexesIgnored(t *testing.T) {
	m, _, grid := newTestMenu()

	// Neither call should panic or touch the grid.
	before := grid.Row(0)
	m.printValue(Item(99), 5)
	m.highlightRow(Item(-1), console.PalSelected)
	m.highlightRow(Item(NumItems), console.PalSelected)
	assert.Equal(t, before, grid.Row(0))
}

func TestInitialScreen(t *testing.T) {
	m, _, grid := newTestMenu()

	assert.Equal(t, ItemPlaySong, m.Pos())
	assert.Contains(t, grid.Row(itemRow(ItemPlaySong)), "PLAY SONG")
	assert.Contains(t, grid.Row(itemRow(ItemChannelMask)), "01234567")
	assert.Contains(t, grid.Row(itemRow(ItemStereoFlag)), "STEREO")
	assert.Contains(t, grid.Row(itemRow(ItemSongStartsFlag)), "SONGS START IMMEDIATELY")
	assert.Equal(t, "127", grid.Row(itemRow(ItemMainVolume))[valueX:valueX+3])

	rows := selectedRows(grid)
	require.Len(t, rows, 1)
	assert.Equal(t, ItemPlaySong, rows[0])
}
