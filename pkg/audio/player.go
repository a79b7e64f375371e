package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Global audio context singleton. oto allows a single context per process,
// so the first loaded sound fixes the output format.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// wavFormat holds WAV file format information
type wavFormat struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// InitAudioContext initializes the global audio context once
func InitAudioContext(format *wavFormat) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Println("Audio context initialized successfully")
	})
}

// Device plays one sound at a time on the shared audio context
type Device struct {
	mu     sync.Mutex
	pcm    []byte
	volume float64
	loop   *loop
}

// NewDevice creates an idle device at full volume
func NewDevice() *Device {
	return &Device{volume: 1}
}

// Load reads the WAV file at path, stopping any current playback
func (d *Device) Load(path string) error {
	d.Stop()

	wavData, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sound file: %w", err)
	}

	format, pcm, err := parseWAV(wavData)
	if err != nil {
		return fmt.Errorf("parse WAV file: %w", err)
	}
	if format.BitDepth != 16 {
		return fmt.Errorf("unsupported WAV bit depth %d, expected 16", format.BitDepth)
	}

	InitAudioContext(format)
	if !audioCtxReady || globalAudioCtx == nil {
		return fmt.Errorf("audio context not ready")
	}

	d.mu.Lock()
	d.pcm = pcm
	d.mu.Unlock()
	return nil
}

// SetVolume applies v to the current and future playback
func (d *Device) SetVolume(v float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.volume = min(1, max(0, v))
	if d.loop != nil {
		d.loop.setVolume(d.volume)
	}
}

// PlayLooping plays the loaded sound until Stop
func (d *Device) PlayLooping() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pcm == nil {
		return fmt.Errorf("no sound loaded")
	}
	if d.loop != nil {
		d.loop.stop()
	}

	d.loop = &loop{
		stopChan: make(chan struct{}),
		volume:   d.volume,
	}
	// Play the sound in a goroutine so it doesn't block the tick
	go d.loop.run(d.pcm)

	return nil
}

// Stop stops the audio playback
func (d *Device) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loop != nil {
		d.loop.stop()
		d.loop = nil
	}
}

// loop repeats one sound with cancellation support
type loop struct {
	mu       sync.Mutex
	stopChan chan struct{}
	player   *oto.Player
	volume   float64
	stopped  bool
}

func (l *loop) run(audioData []byte) {
	for {
		l.mu.Lock()
		if l.stopped {
			l.mu.Unlock()
			return
		}
		// Create a new player for each loop iteration
		player := globalAudioCtx.NewPlayer(bytes.NewReader(audioData))
		player.SetVolume(l.volume)
		l.player = player
		l.mu.Unlock()

		// Play starts playing the sound and returns without waiting
		player.Play()

		// Wait for the sound to finish playing or stop signal
		for player.IsPlaying() {
			select {
			case <-l.stopChan:
				player.Pause()
				player.Close()
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		if err := player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		select {
		case <-l.stopChan:
			return
		default:
		}
	}
}

func (l *loop) setVolume(v float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.volume = v
	if l.player != nil {
		l.player.SetVolume(v)
	}
}

func (l *loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.stopped {
		l.stopped = true
		close(l.stopChan)

		if l.player != nil {
			l.player.Pause()
		}

		log.Println("Audio playback stopped")
	}
}

// Silent is an audio device that plays nothing
type Silent struct{}

func (Silent) Load(string) error  { return nil }
func (Silent) SetVolume(float64)  {}
func (Silent) PlayLooping() error { return nil }
func (Silent) Stop()              {}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (*wavFormat, []byte, error) {
	reader := bytes.NewReader(data)

	riff := make([]byte, 4)
	if _, err := io.ReadFull(reader, riff); err != nil {
		return nil, nil, err
	}
	if string(riff) != "RIFF" {
		return nil, nil, fmt.Errorf("missing RIFF header")
	}

	// Skip file size
	reader.Seek(4, io.SeekCurrent)

	wave := make([]byte, 4)
	if _, err := io.ReadFull(reader, wave); err != nil {
		return nil, nil, err
	}
	if string(wave) != "WAVE" {
		return nil, nil, fmt.Errorf("missing WAVE header")
	}

	format := &wavFormat{}
	var audioData []byte

	// Read chunks
	for audioData == nil {
		chunkID := make([]byte, 4)
		if _, err := io.ReadFull(reader, chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		switch string(chunkID) {
		case "fmt ":
			var header struct {
				AudioFormat   uint16
				NumChannels   uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
				return nil, nil, err
			}
			format.Channels = int(header.NumChannels)
			format.SampleRate = int(header.SampleRate)
			format.BitDepth = int(header.BitsPerSample)

			// Skip any extra format bytes
			if chunkSize > 16 {
				reader.Seek(int64(chunkSize-16), io.SeekCurrent)
			}
		case "data":
			audioData = make([]byte, chunkSize)
			n, _ := io.ReadFull(reader, audioData)
			audioData = audioData[:n]
		default:
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}

	if format.SampleRate == 0 || format.Channels == 0 {
		return nil, nil, fmt.Errorf("missing fmt chunk")
	}
	if audioData == nil {
		return nil, nil, fmt.Errorf("missing data chunk")
	}

	return format, audioData, nil
}
