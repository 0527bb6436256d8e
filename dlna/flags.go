// Package dlna computes the DLNA negotiation attributes attached to
// every resource a renderer can reach: the DLNA.ORG_PN profile name,
// the ORG_OP seek permissions, the ORG_CI conversion indicator and the
// ORG_FLAGS capability bitmask, plus the protocolInfo / contentFeatures
// strings that carry them on the wire.
package dlna

import "fmt"

// OrgFlags is the primary-flags token of DLNA.ORG_FLAGS. The rendered
// form is 8 hex digits followed by 24 reserved zeros; the width is
// wire-significant and must never change.
type OrgFlags uint32

const (
	// FlagSenderPaced marks content paced by the sender (bit 31).
	FlagSenderPaced OrgFlags = 1 << (31 - iota)
	// FlagLimitedTimeSeek marks limited random access by time (bit 30).
	FlagLimitedTimeSeek
	// FlagLimitedByteSeek marks limited random access by byte (bit 29).
	FlagLimitedByteSeek
	// FlagPlayContainer marks DLNA PlayContainer support (bit 28).
	FlagPlayContainer
	// FlagS0Increasing marks a growing beginning data range (bit 27).
	FlagS0Increasing
	// FlagSNIncreasing marks a growing ending data range (bit 26).
	FlagSNIncreasing
	// FlagRTSPPause marks RTSP pause support (bit 25).
	FlagRTSPPause
	// FlagStreamingMode marks streaming transfer mode (bit 24).
	FlagStreamingMode
	// FlagInteractiveMode marks interactive transfer mode (bit 23).
	FlagInteractiveMode
	// FlagBackgroundMode marks background transfer mode (bit 22).
	FlagBackgroundMode
	// FlagConnectionStalling tolerates stalled HTTP connections (bit 21).
	FlagConnectionStalling
	// FlagDLNAv15 marks DLNA v1.5 compliance (bit 20).
	FlagDLNAv15
)

const reservedData = "000000000000000000000000"

// StreamingFlags is the bitmask used for playable audio/video resources.
const StreamingFlags = FlagStreamingMode | FlagBackgroundMode | FlagConnectionStalling | FlagDLNAv15

// InteractiveFlags is the bitmask used for image and thumbnail
// resources, which are fetched rather than streamed.
const InteractiveFlags = FlagInteractiveMode | FlagDLNAv15

// String renders the fixed-width ORG_FLAGS value.
func (f OrgFlags) String() string {
	return fmt.Sprintf("%08x%s", uint32(f), reservedData)
}

// Param renders the full token as placed in protocolInfo.
func (f OrgFlags) Param() string {
	return "DLNA.ORG_FLAGS=" + f.String()
}
