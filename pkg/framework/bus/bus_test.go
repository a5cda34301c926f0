package bus

import (
	"testing"
)

func TestNewStereoConfiguration(t *testing.T) {
	config := NewStereoConfiguration()

	// Check bus counts
	if got := config.GetBusCount(MediaTypeAudio, DirectionInput); got != 1 {
		t.Errorf("Expected 1 audio input bus, got %d", got)
	}
	if got := config.GetBusCount(MediaTypeAudio, DirectionOutput); got != 1 {
		t.Errorf("Expected 1 audio output bus, got %d", got)
	}
	if got := config.GetBusCount(MediaTypeEvent, DirectionInput); got != 0 {
		t.Errorf("Expected no event buses, got %d", got)
	}

	// Check input bus
	inBus := config.GetBusInfo(MediaTypeAudio, DirectionInput, 0)
	if inBus == nil {
		t.Fatal("Expected input bus to exist")
	}
	if inBus.ChannelCount != 2 {
		t.Errorf("Expected 2 input channels, got %d", inBus.ChannelCount)
	}
	if inBus.Name != "Stereo In" {
		t.Errorf("Expected input name 'Stereo In', got %s", inBus.Name)
	}

	// Check output bus
	outBus := config.GetBusInfo(MediaTypeAudio, DirectionOutput, 0)
	if outBus == nil {
		t.Fatal("Expected output bus to exist")
	}
	if outBus.ChannelCount != 2 {
		t.Errorf("Expected 2 output channels, got %d", outBus.ChannelCount)
	}
}

func TestGetBusInfoOutOfRange(t *testing.T) {
	config := NewStereoConfiguration()

	tests := []struct {
		name      string
		mediaType MediaType
		direction Direction
		index     int32
	}{
		{"Second input", MediaTypeAudio, DirectionInput, 1},
		{"Negative index", MediaTypeAudio, DirectionOutput, -1},
		{"Event bus", MediaTypeEvent, DirectionInput, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if info := config.GetBusInfo(tt.mediaType, tt.direction, tt.index); info != nil {
				t.Errorf("expected nil, got %+v", info)
			}
		})
	}
}

func TestChannelCounts(t *testing.T) {
	config := NewStereoConfiguration()
	if config.InputChannels() != 2 || config.OutputChannels() != 2 {
		t.Fatalf("channels = %d/%d, want 2/2", config.InputChannels(), config.OutputChannels())
	}

	if !config.SetBusActive(MediaTypeAudio, DirectionInput, 0, false) {
		t.Fatal("SetBusActive on main input failed")
	}
	if config.InputChannels() != 0 {
		t.Errorf("inactive input still counted: %d", config.InputChannels())
	}
	if config.SetBusActive(MediaTypeAudio, DirectionInput, 3, true) {
		t.Error("SetBusActive should fail for a missing bus")
	}
}
