// Package tad models the public command surface of the audio driver.
//
// The driver accepts fire-and-forget commands through two lanes: the
// normal queue holds a single pending command and drops new ones while
// it is occupied, the override lane replaces whatever is pending.
// Playback status is exposed through four boolean queries. Everything
// past this surface (mixing, scheduling, data loading) belongs to the
// driver and is invisible here.
package tad

// Command identifies a queueable driver command. The driver's command
// IDs are even numbers.
type Command uint8

const (
	CmdPause             Command = 0
	CmdPauseMusicPlaySfx Command = 2
	CmdUnpause           Command = 4
	CmdPlaySoundEffect   Command = 6
	CmdStopSoundEffects  Command = 8
	CmdSetMainVolume     Command = 10
	CmdSetMusicChannels  Command = 12
	CmdSetSongTimer      Command = 14
)

func (c Command) String() string {
	switch c {
	case CmdPause:
		return "pause"
	case CmdPauseMusicPlaySfx:
		return "pause_music_play_sfx"
	case CmdUnpause:
		return "unpause"
	case CmdPlaySoundEffect:
		return "play_sound_effect"
	case CmdStopSoundEffects:
		return "stop_sound_effects"
	case CmdSetMainVolume:
		return "set_main_volume"
	case CmdSetMusicChannels:
		return "set_music_channels"
	case CmdSetSongTimer:
		return "set_song_timer"
	}
	return "unknown"
}

const (
	// MaxPan is the rightmost pan position; CenterPan is the middle.
	MaxPan    = 128
	CenterPan = 64

	// MinTickClock is the lowest valid song timer value.
	MinTickClock = 64

	MaxVolume = 127
)

// Driver is the audio driver as seen by the menu: a set of non-blocking
// command calls plus status queries. Process pumps the driver and must
// be called once per frame.
type Driver interface {
	Process()

	LoadSong(song uint8)
	QueueSoundEffect(sfx uint8)
	QueuePannedSoundEffect(sfx, pan uint8)

	// Queue puts a command on the normal lane. It reports false if the
	// lane was occupied and the command was dropped.
	Queue(cmd Command, param uint8) bool

	// QueueOverride replaces any pending command with cmd.
	QueueOverride(cmd Command, param uint8)

	SetStereo()
	SetMono()
	SongsStartImmediately()
	SongsStartPaused()
	ReloadCommonAudioData()

	IsSongPlaying() bool
	IsSfxPlaying() bool
	IsSongLoaded() bool
	IsLoaderActive() bool
}

// Project describes the audio data the driver was built against and
// bounds the ids the menu may select.
type Project struct {
	LastSong     uint8 // highest valid song id
	SoundEffects uint8 // number of sound effects, ids 0..SoundEffects-1
}
