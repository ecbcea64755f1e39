package tad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestSimulator() *Simulator {
	return NewSimulator(Project{LastSong: 3, SoundEffects: 4})
}

func pump(s *Simulator, frames int) {
	for i := 0; i < frames; i++ {
		s.Process()
	}
}

func TestLoadSongProgression(t *testing.T) {
	s := newTestSimulator()

	assert.False(t, s.IsSongLoaded())
	assert.False(t, s.IsLoaderActive())

	s.LoadSong(0)
	assert.True(t, s.IsLoaderActive())
	assert.False(t, s.IsSongLoaded())
	assert.False(t, s.IsSongPlaying())

	pump(s, loaderFrames)
	assert.False(t, s.IsLoaderActive())
	assert.True(t, s.IsSongLoaded())
	assert.True(t, s.IsSongPlaying(), "songs start immediately by default")
}

func TestSongsStartPaused(t *testing.T) {
	s := newTestSimulator()
	s.SongsStartPaused()

	s.LoadSong(1)
	pump(s, loaderFrames)

	assert.True(t, s.IsSongLoaded())
	assert.False(t, s.IsSongPlaying())

	s.QueueOverride(CmdUnpause, 0)
	s.Process()
	assert.True(t, s.IsSongPlaying())
}

func TestLoadSongOutOfRangeIgnored(t *testing.T) {
	s := newTestSimulator()
	s.LoadSong(4)
	assert.False(t, s.IsLoaderActive())
}

func TestSoundEffectExpires(t *testing.T) {
	s := newTestSimulator()

	s.QueuePannedSoundEffect(0, CenterPan)
	assert.True(t, s.IsSfxPlaying())

	pump(s, sfxFrames)
	assert.False(t, s.IsSfxPlaying())
}

func TestSoundEffectValidation(t *testing.T) {
	s := newTestSimulator()

	s.QueuePannedSoundEffect(99, CenterPan)
	assert.False(t, s.IsSfxPlaying(), "unknown sfx id is ignored")

	s.QueuePannedSoundEffect(0, MaxPan+1)
	assert.False(t, s.IsSfxPlaying(), "out of range pan is ignored")
}

func TestQueueIsSingleSlot(t *testing.T) {
	s := newTestSimulator()

	assert.True(t, s.Queue(CmdSetMainVolume, 100))
	assert.False(t, s.Queue(CmdSetMainVolume, 90), "second command dropped while one is pending")

	s.Process()
	assert.Equal(t, uint8(100), s.MainVolume())
	assert.True(t, s.Queue(CmdSetMainVolume, 90), "lane free again after delivery")
}

func TestQueueOverrideReplacesPending(t *testing.T) {
	s := newTestSimulator()

	s.Queue(CmdSetMainVolume, 100)
	s.QueueOverride(CmdSetMainVolume, 50)
	s.Process()

	assert.Equal(t, uint8(50), s.MainVolume())
}

func TestStopSoundEffects(t *testing.T) {
	s := newTestSimulator()

	s.QueuePannedSoundEffect(1, CenterPan)
	s.QueueOverride(CmdStopSoundEffects, 0)
	s.Process()

	assert.False(t, s.IsSfxPlaying())
}

func TestPauseCommands(t *testing.T) {
	s := newTestSimulator()
	s.LoadSong(0)
	pump(s, loaderFrames)
	assert.True(t, s.IsSongPlaying())

	s.QueuePannedSoundEffect(0, CenterPan)
	s.Queue(CmdPauseMusicPlaySfx, 0)
	s.Process()
	assert.False(t, s.IsSongPlaying())
	assert.True(t, s.IsSfxPlaying(), "sfx keep playing when only music pauses")

	s.Queue(CmdPause, 0)
	s.Process()
	assert.False(t, s.IsSfxPlaying(), "full pause silences sound effects too")

	s.QueueOverride(CmdUnpause, 0)
	s.Process()
	assert.True(t, s.IsSongPlaying())
}

func TestReloadCommonAudioData(t *testing.T) {
	s := newTestSimulator()
	s.LoadSong(0)
	pump(s, loaderFrames)

	s.ReloadCommonAudioData()
	assert.True(t, s.IsLoaderActive())
	assert.False(t, s.IsSongLoaded())
	assert.False(t, s.IsSongPlaying())
}

func TestSetMusicChannelsAndTimer(t *testing.T) {
	s := newTestSimulator()

	s.QueueOverride(CmdSetMusicChannels, 0x5a)
	s.Process()
	assert.Equal(t, uint8(0x5a), s.MusicChannels())

	s.QueueOverride(CmdSetSongTimer, 100)
	s.Process()
	assert.Equal(t, uint8(100), s.SongTimer())

	// Values below the minimum tick clock are rejected.
	s.QueueOverride(CmdSetSongTimer, MinTickClock-1)
	s.Process()
	assert.Equal(t, uint8(100), s.SongTimer())
}

func TestStereoFlag(t *testing.T) {
	s := newTestSimulator()
	assert.True(t, s.Stereo())

	s.SetMono()
	assert.False(t, s.Stereo())

	s.SetStereo()
	assert.True(t, s.Stereo())
}
