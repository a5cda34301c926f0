// Package bus describes the audio buses a plugin exposes to the host.
package bus

// MediaType is what a bus carries.
type MediaType int32

const (
	MediaTypeAudio MediaType = 0
	MediaTypeEvent MediaType = 1
)

// Direction is the side of the plugin a bus sits on.
type Direction int32

const (
	DirectionInput  Direction = 0
	DirectionOutput Direction = 1
)

// Type distinguishes the main bus from sidechains.
type Type int32

const (
	TypeMain Type = 0
	TypeAux  Type = 1
)

// Info describes one bus as the host sees it.
type Info struct {
	MediaType    MediaType
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration is a plugin's audio bus layout, one list per direction in
// host order. Plugins here take no events, so event buses are absent.
type Configuration struct {
	inputs  []Info
	outputs []Info
}

// NewStereoConfiguration is one active stereo main bus each way.
func NewStereoConfiguration() *Configuration {
	return &Configuration{
		inputs:  []Info{stereoMain("Stereo In", DirectionInput)},
		outputs: []Info{stereoMain("Stereo Out", DirectionOutput)},
	}
}

func stereoMain(name string, d Direction) Info {
	return Info{
		MediaType:    MediaTypeAudio,
		Direction:    d,
		ChannelCount: 2,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	}
}

func (c *Configuration) buses(mediaType MediaType, d Direction) []Info {
	switch {
	case mediaType != MediaTypeAudio:
		return nil
	case d == DirectionInput:
		return c.inputs
	case d == DirectionOutput:
		return c.outputs
	}
	return nil
}

// GetBusCount returns how many buses of a kind exist.
func (c *Configuration) GetBusCount(mediaType MediaType, direction Direction) int32 {
	return int32(len(c.buses(mediaType, direction)))
}

// GetBusInfo returns the index-th bus of a kind, or nil.
func (c *Configuration) GetBusInfo(mediaType MediaType, direction Direction, index int32) *Info {
	list := c.buses(mediaType, direction)
	if index < 0 || int(index) >= len(list) {
		return nil
	}
	return &list[index]
}

// SetBusActive reports false when the bus does not exist.
func (c *Configuration) SetBusActive(mediaType MediaType, direction Direction, index int32, active bool) bool {
	info := c.GetBusInfo(mediaType, direction, index)
	if info == nil {
		return false
	}
	info.IsActive = active
	return true
}

// InputChannels sums the channels of the active inputs.
func (c *Configuration) InputChannels() int32 {
	return activeChannels(c.inputs)
}

// OutputChannels sums the channels of the active outputs.
func (c *Configuration) OutputChannels() int32 {
	return activeChannels(c.outputs)
}

func activeChannels(list []Info) int32 {
	var n int32
	for _, b := range list {
		if b.IsActive {
			n += b.ChannelCount
		}
	}
	return n
}
