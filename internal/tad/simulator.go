package tad

import "log/slog"

const (
	// Frames the loader stays busy after a song load or data reload.
	loaderFrames = 30

	// Frames a queued sound effect reports as playing.
	sfxFrames = 45
)

// Simulator is a status-only stand-in for the audio driver. It models
// the loader and playback status transitions so the menu has something
// to display, records the values it is told, and logs every command.
// It produces no audio.
type Simulator struct {
	project Project

	loaderLeft int
	songLoaded bool
	playing    bool
	sfxLeft    int

	startPaused bool
	stereo      bool

	mainVolume    uint8
	musicChannels uint8
	songTimer     uint8

	pending    Command
	pendingArg uint8
	hasPending bool
}

func NewSimulator(project Project) *Simulator {
	return &Simulator{
		project:       project,
		stereo:        true,
		mainVolume:    MaxVolume,
		musicChannels: 0xff,
	}
}

// Process pumps the simulator: advances the loader and sound effect
// timers and delivers the pending command, if any.
func (s *Simulator) Process() {
	if s.loaderLeft > 0 {
		s.loaderLeft--
		if s.loaderLeft == 0 {
			s.songLoaded = true
			s.playing = !s.startPaused
			slog.Debug("song load finished", "playing", s.playing)
		}
	}
	if s.sfxLeft > 0 {
		s.sfxLeft--
	}
	if s.hasPending {
		s.apply(s.pending, s.pendingArg)
		s.hasPending = false
	}
}

func (s *Simulator) LoadSong(song uint8) {
	if song > s.project.LastSong {
		return
	}
	s.songLoaded = false
	s.playing = false
	s.loaderLeft = loaderFrames
	s.hasPending = false
	slog.Debug("load song", "song", song)
}

func (s *Simulator) QueueSoundEffect(sfx uint8) {
	s.QueuePannedSoundEffect(sfx, CenterPan)
}

func (s *Simulator) QueuePannedSoundEffect(sfx, pan uint8) {
	if sfx >= s.project.SoundEffects || pan > MaxPan {
		return
	}
	s.sfxLeft = sfxFrames
	slog.Debug("queue sound effect", "sfx", sfx, "pan", pan)
}

func (s *Simulator) Queue(cmd Command, param uint8) bool {
	if s.hasPending {
		slog.Debug("command dropped, queue full", "cmd", cmd)
		return false
	}
	s.pending = cmd
	s.pendingArg = param
	s.hasPending = true
	slog.Debug("queue command", "cmd", cmd, "param", param)
	return true
}

func (s *Simulator) QueueOverride(cmd Command, param uint8) {
	s.pending = cmd
	s.pendingArg = param
	s.hasPending = true
	slog.Debug("queue override command", "cmd", cmd, "param", param)
}

func (s *Simulator) apply(cmd Command, param uint8) {
	switch cmd {
	case CmdPause:
		s.playing = false
		s.sfxLeft = 0
	case CmdPauseMusicPlaySfx:
		s.playing = false
	case CmdUnpause:
		if s.songLoaded {
			s.playing = true
		}
	case CmdPlaySoundEffect:
		s.sfxLeft = sfxFrames
	case CmdStopSoundEffects:
		s.sfxLeft = 0
	case CmdSetMainVolume:
		s.mainVolume = param
	case CmdSetMusicChannels:
		s.musicChannels = param
	case CmdSetSongTimer:
		if param >= MinTickClock {
			s.songTimer = param
		}
	}
}

func (s *Simulator) SetStereo() {
	s.stereo = true
	slog.Debug("stereo enabled")
}

func (s *Simulator) SetMono() {
	s.stereo = false
	slog.Debug("mono enabled")
}

func (s *Simulator) SongsStartImmediately() { s.startPaused = false }

func (s *Simulator) SongsStartPaused() { s.startPaused = true }

func (s *Simulator) ReloadCommonAudioData() {
	s.songLoaded = false
	s.playing = false
	s.sfxLeft = 0
	s.loaderLeft = loaderFrames
	slog.Debug("reloading common audio data")
}

func (s *Simulator) IsSongPlaying() bool { return s.songLoaded && s.playing }

func (s *Simulator) IsSfxPlaying() bool { return s.sfxLeft > 0 }

func (s *Simulator) IsSongLoaded() bool { return s.songLoaded }

func (s *Simulator) IsLoaderActive() bool { return s.loaderLeft > 0 }

// Values recorded from commands, exposed for inspection.

func (s *Simulator) MainVolume() uint8 { return s.mainVolume }

func (s *Simulator) MusicChannels() uint8 { return s.musicChannels }

func (s *Simulator) SongTimer() uint8 { return s.songTimer }

func (s *Simulator) Stereo() bool { return s.stereo }
