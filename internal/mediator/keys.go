package mediator

// HID consumer control usages sent by the remote.
const (
	consumerMenuEscape      byte = 0x46
	consumerChannel         byte = 0x86
	consumerMediaSelectHome byte = 0x9A
	consumerPlayPause       byte = 0xCD
	consumerVolumeUp        byte = 0xE9
	consumerVolumeDown      byte = 0xEA
)

// HID keyboard usages sent by the remote.
const (
	keyArrowRight byte = 0x4F
	keyArrowLeft  byte = 0x50
	keyArrowDown  byte = 0x51
	keyArrowUp    byte = 0x52
)
