// Package menu implements the interactive menu that exercises the audio
// driver's command interface: a 12-row cursor, per-row adjustable
// values, and a dispatch from row actions to driver commands.
package menu

import (
	"soundtest/internal/console"
	"soundtest/internal/pad"
	"soundtest/internal/tad"
)

// Screen layout, in grid cells.
const (
	cursorX      = 2
	labelX       = cursorX + 2
	valueX       = 25
	channelMaskX = valueX - 5

	stateX = 23
	stateY = 2

	menuTopY = 3
)

// itemRow returns the grid row an item is drawn on.
func itemRow(it Item) int { return int(it)*2 + menuTopY }

// State labels are padded to a common width so a shorter label
// overwrites a longer one.
const (
	stateUnknown = "......."
	statePlaying = "PLAYING"
	stateSfx     = "SFX    "
	statePaused  = "PAUSED "
	stateLoading = "LOADING"
)

const (
	stereoLabel = "STEREO"
	monoLabel   = "MONO  "

	songsStartImmediatelyLabel = "SONGS START IMMEDIATELY"
	songsStartPausedLabel      = "SONGS START PAUSED     "
)

// Menu owns the cursor, the per-row values and the screen regions they
// are rendered into. Values are redrawn on every mutation so the
// display always mirrors memory.
type Menu struct {
	drv  tad.Driver
	grid *console.Grid

	pos Item

	// selectedBit is the channel-mask editing cursor. Exactly one bit
	// is set at all times; it is independent of the mask itself.
	selectedBit uint8

	values      [NumItems]uint8 // numeric rows only, indexed by item
	channelMask uint8

	stereo      bool
	songsStart  bool // true: songs start immediately, false: paused
	specs       [NumItems]valueSpec
}

// New draws the initial screen and pushes the default stereo and
// song-start modes to the driver.
func New(drv tad.Driver, grid *console.Grid, project tad.Project) *Menu {
	m := &Menu{
		drv:         drv,
		grid:        grid,
		selectedBit: 1,
		channelMask: 0xff,
	}

	m.values[ItemSfxPan] = tad.CenterPan
	m.values[ItemMainVolume] = tad.MaxVolume
	m.values[ItemOverrideTempo] = 100

	m.specs[ItemPlaySong] = valueSpec{speed: adjustSlow, max: project.LastSong}
	if project.SoundEffects > 0 {
		m.specs[ItemPlaySfx] = valueSpec{speed: adjustSlow, max: project.SoundEffects - 1}
	}
	m.specs[ItemSfxPan] = valueSpec{speed: adjustFast, max: tad.MaxPan}
	m.specs[ItemMainVolume] = valueSpec{speed: adjustFast, max: tad.MaxVolume}
	m.specs[ItemOverrideTempo] = valueSpec{speed: adjustFast, min: tad.MinTickClock, max: 0xff}

	m.setSongsStartFlag(true)
	m.setStereoFlag(true)

	for it, label := range itemLabels {
		if label != "" {
			grid.DrawText(labelX, itemRow(Item(it)), label)
		}
	}
	grid.DrawText(channelMaskX, itemRow(ItemChannelMask), "01234567")

	m.printValue(ItemPlaySong, m.values[ItemPlaySong])
	m.printValue(ItemPlaySfx, m.values[ItemPlaySfx])
	m.printValue(ItemSfxPan, m.values[ItemSfxPan])
	m.printValue(ItemMainVolume, m.values[ItemMainVolume])
	m.printValue(ItemOverrideTempo, m.values[ItemOverrideTempo])

	m.setPos(0)
	m.updateChannelMask()

	return m
}

// Process runs one frame of the menu: status display, idle resets, then
// exactly one of cursor movement, action dispatch, a shortcut, or value
// editing, in that priority order.
func (m *Menu) Process(p *pad.State) {
	m.printState()

	// Reset to safe defaults whenever no song is loaded. This
	// intentionally overwrites pending edits every frame while idle.
	if !m.drv.IsSongLoaded() {
		m.values[ItemMainVolume] = tad.MaxVolume
		m.printValue(ItemMainVolume, m.values[ItemMainVolume])

		m.channelMask = 0xff
		m.updateChannelMask()
	}

	pressed := p.Pressed()
	switch {
	case pressed&pad.Up != 0:
		m.setPos(int(m.pos) - 1)
	case pressed&pad.Down != 0:
		m.setPos(int(m.pos) + 1)
	case pressed&(pad.A|pad.B) != 0:
		m.processAction()
	case pressed&pad.Start != 0:
		m.pauseUnpauseMusic()
	case pressed&pad.X != 0:
		m.drv.QueueOverride(tad.CmdStopSoundEffects, 0)
	default:
		m.processItem(p)
	}
}

func (m *Menu) printState() {
	label := stateUnknown
	switch {
	case m.drv.IsSongPlaying():
		label = statePlaying
	case m.drv.IsSfxPlaying():
		label = stateSfx
	case m.drv.IsSongLoaded():
		label = statePaused
	case m.drv.IsLoaderActive():
		label = stateLoading
	}

	m.grid.SetTextPalette(console.PalState)
	m.grid.DrawText(stateX, stateY, label)
	m.grid.SetTextPalette(console.PalNormal)
}

func (m *Menu) printValue(it Item, value uint8) {
	if it < 0 || it >= NumItems {
		return
	}
	if m.pos == it {
		m.grid.SetTextPalette(console.PalSelected)
	}
	m.grid.DrawTextf(valueX, itemRow(it), "%3d", value)
	m.grid.SetTextPalette(console.PalNormal)
}

func (m *Menu) setStereoFlag(f bool) {
	m.stereo = f

	if m.pos == ItemStereoFlag {
		m.grid.SetTextPalette(console.PalSelected)
	}
	label := monoLabel
	if f {
		label = stereoLabel
	}
	m.grid.DrawText(labelX, itemRow(ItemStereoFlag), label)
	m.grid.SetTextPalette(console.PalNormal)

	if f {
		m.drv.SetStereo()
	} else {
		m.drv.SetMono()
	}
}

func (m *Menu) setSongsStartFlag(f bool) {
	m.songsStart = f

	if m.pos == ItemSongStartsFlag {
		m.grid.SetTextPalette(console.PalSelected)
	}
	label := songsStartPausedLabel
	if f {
		label = songsStartImmediatelyLabel
	}
	m.grid.DrawText(labelX, itemRow(ItemSongStartsFlag), label)
	m.grid.SetTextPalette(console.PalNormal)

	if f {
		m.drv.SongsStartImmediately()
	} else {
		m.drv.SongsStartPaused()
	}
}

// setPos moves the cursor with wraparound. The old row's highlight is
// cleared and the new row's set in the same update, so exactly one row
// is highlighted at all times.
func (m *Menu) setPos(newPos int) {
	if newPos < 0 {
		newPos = NumItems - 1
	} else if newPos >= NumItems {
		newPos = 0
	}

	// Safety
	if m.pos < 0 || m.pos >= NumItems {
		m.pos = 0
	}

	m.grid.DrawText(cursorX, itemRow(m.pos), " ")
	m.grid.DrawText(cursorX, itemRow(Item(newPos)), ">")

	m.highlightRow(m.pos, console.PalNormal)
	m.highlightRow(Item(newPos), console.PalSelected)

	m.pos = Item(newPos)

	m.updateChannelMask()
}

// highlightRow recolors every cell of an item's row.
func (m *Menu) highlightRow(it Item, p console.Palette) {
	if it < 0 || it >= NumItems {
		return
	}
	y := itemRow(it)
	for x := 0; x < console.Width; x++ {
		m.grid.SetAttr(x, y, p)
	}
}

// updateChannelMask recolors the eight channel digits: enabled/disabled
// crossed with whether the digit is under the selection cursor. The
// selection is only shown while the cursor is on the channel-mask row.
func (m *Menu) updateChannelMask() {
	y := itemRow(ItemChannelMask)

	sel := uint8(0)
	if m.pos == ItemChannelMask {
		sel = m.selectedBit
	}
	mask := m.channelMask

	for i := 0; i < 8; i++ {
		var p console.Palette
		if mask&1 != 0 {
			p = console.PalEnabledChannel
			if sel&1 != 0 {
				p = console.PalSelectedEnabledChannel
			}
		} else {
			p = console.PalDisabledChannel
			if sel&1 != 0 {
				p = console.PalSelectedDisabledChannel
			}
		}
		m.grid.SetAttr(channelMaskX+i, y, p)

		mask >>= 1
		sel >>= 1
	}
}

func (m *Menu) pauseUnpauseMusic() {
	if m.drv.IsSongPlaying() {
		m.drv.Queue(tad.CmdPauseMusicPlaySfx, 0)
	} else {
		m.drv.QueueOverride(tad.CmdUnpause, 0)
	}
}

// processAction fires the current row's action.
func (m *Menu) processAction() {
	switch m.pos {
	case ItemPlaySong:
		m.drv.LoadSong(m.values[ItemPlaySong])

	case ItemPlaySfx, ItemSfxPan:
		m.drv.QueuePannedSoundEffect(m.values[ItemPlaySfx], m.values[ItemSfxPan])

	case ItemMainVolume:
		m.drv.QueueOverride(tad.CmdSetMainVolume, m.values[ItemMainVolume])

	case ItemOverrideTempo:
		m.drv.QueueOverride(tad.CmdSetSongTimer, m.values[ItemOverrideTempo])

	case ItemChannelMask:
		m.channelMask ^= m.selectedBit
		m.updateChannelMask()
		m.drv.QueueOverride(tad.CmdSetMusicChannels, m.channelMask)

	case ItemStereoFlag:
		m.setStereoFlag(!m.stereo)

	case ItemSongStartsFlag:
		m.setSongsStartFlag(!m.songsStart)

	case ItemStopSoundEffects:
		m.drv.QueueOverride(tad.CmdStopSoundEffects, 0)

	case ItemPauseUnpauseMusic:
		m.pauseUnpauseMusic()

	case ItemPauseMusicAndSfx:
		m.drv.Queue(tad.CmdPause, 0)

	case ItemReloadCommonAudioData:
		m.drv.ReloadCommonAudioData()
	}
}

// processItem runs when no navigation or action button was pressed:
// left/right edit the current row's value.
func (m *Menu) processItem(p *pad.State) {
	pressed := p.Pressed()

	switch m.pos {
	case ItemPlaySong, ItemPlaySfx, ItemSfxPan, ItemMainVolume, ItemOverrideTempo:
		spec := m.specs[m.pos]
		if spec.speed == adjustNone {
			break
		}
		buttons := pressed
		if spec.speed == adjustFast {
			buttons = p.Held()
		}

		v := m.adjustValue(m.values[m.pos], m.pos, spec.min, spec.max, buttons)
		if m.pos == ItemMainVolume {
			// Volume notifies the driver live so audio reacts while
			// the button is held.
			if v != m.values[ItemMainVolume] {
				m.values[ItemMainVolume] = v
				m.drv.Queue(tad.CmdSetMainVolume, v)
			}
		} else {
			m.values[m.pos] = v
		}

	case ItemChannelMask:
		if pressed&(pad.Left|pad.Right) != 0 {
			if pressed&pad.Right != 0 {
				m.selectedBit <<= 1
				if m.selectedBit == 0 {
					m.selectedBit = 1
				}
			} else {
				m.selectedBit >>= 1
				if m.selectedBit == 0 {
					m.selectedBit = 0x80
				}
			}
			m.updateChannelMask()
		}

	case ItemStereoFlag:
		if pressed&(pad.Left|pad.Right) != 0 {
			m.setStereoFlag(!m.stereo)
		}

	case ItemSongStartsFlag:
		if pressed&(pad.Left|pad.Right) != 0 {
			m.setSongsStartFlag(!m.songsStart)
		}
	}
}

// adjustValue decrements or increments value within [min, max] and
// redraws it on change.
func (m *Menu) adjustValue(value uint8, it Item, min, max uint8, buttons pad.Button) uint8 {
	if buttons&pad.Left != 0 {
		if value > min {
			value--
			m.printValue(it, value)
		}
	} else if buttons&pad.Right != 0 {
		if value < max {
			value++
			m.printValue(it, value)
		}
	}
	return value
}

// Accessors, mostly for tests and status displays.

func (m *Menu) Pos() Item { return m.pos }

func (m *Menu) Song() uint8 { return m.values[ItemPlaySong] }

func (m *Menu) Sfx() uint8 { return m.values[ItemPlaySfx] }

func (m *Menu) SfxPan() uint8 { return m.values[ItemSfxPan] }

func (m *Menu) MainVolume() uint8 { return m.values[ItemMainVolume] }

func (m *Menu) TempoOverride() uint8 { return m.values[ItemOverrideTempo] }

func (m *Menu) ChannelMask() uint8 { return m.channelMask }

func (m *Menu) SelectedBit() uint8 { return m.selectedBit }

func (m *Menu) Stereo() bool { return m.stereo }

func (m *Menu) SongsStartImmediately() bool { return m.songsStart }
