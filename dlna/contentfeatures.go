package dlna

import (
	"strings"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmotrans"
)

// ORG_OP values. The first digit grants time seeking, the second byte
// seeking.
const (
	OpByteSeek = "01"
	OpTimeSeek = "10"
	OpBothSeek = "11"
)

// OrgOpFlags picks the DLNA.ORG_OP value for one resource. Byte seeking
// is always on for directly streamed files. A transcoded stream has no
// stable byte positions, so seeking switches to time based when the
// engine supports it; some renderers misbehave when both digits are set
// and get the exclusive time-only form.
func OrgOpFlags(renderer *pmorender.Profile, engine pmotrans.EngineID, transcoded bool) string {
	if transcoded && renderer != nil && renderer.SeekByTime && engine.IsTimeSeekable() {
		if renderer.SeekByTimeExclusive {
			return OpTimeSeek
		}
		return OpBothSeek
	}
	return OpByteSeek
}

// ContentFeatures carries the negotiated fourth field of protocolInfo.
type ContentFeatures struct {
	// ProfileName is the DLNA.ORG_PN value; empty means the token is
	// omitted entirely.
	ProfileName string
	// OpFlags is the two digit ORG_OP value; empty omits the token.
	OpFlags string
	// Converted sets ORG_CI=1, advertising transcoded content.
	Converted bool
	// SendCI controls whether ORG_CI appears at all.
	SendCI bool
	// Flags is the ORG_FLAGS bitmask; SendFlags gates its emission.
	Flags     OrgFlags
	SendFlags bool
}

// String renders the tokens in the canonical order PN, OP, CI, FLAGS.
// An empty feature set renders as "*" so the result can be dropped into
// protocolInfo untouched.
func (c ContentFeatures) String() string {
	var parts []string
	if c.ProfileName != "" {
		parts = append(parts, "DLNA.ORG_PN="+c.ProfileName)
	}
	if c.OpFlags != "" {
		parts = append(parts, "DLNA.ORG_OP="+c.OpFlags)
	}
	if c.SendCI {
		ci := "0"
		if c.Converted {
			ci = "1"
		}
		parts = append(parts, "DLNA.ORG_CI="+ci)
	}
	if c.SendFlags {
		parts = append(parts, c.Flags.Param())
	}
	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, ";")
}

// ProtocolInfo assembles the full http-get protocolInfo attribute.
func ProtocolInfo(mimeType string, features ContentFeatures) string {
	if mimeType == "" {
		mimeType = "*"
	}
	return "http-get:*:" + mimeType + ":" + features.String()
}

// StreamFeatures builds the content features for the main audio/video
// resource. profileName already went through the renderer override
// table and may be empty when the renderer opted out of ORG_PN.
func StreamFeatures(renderer *pmorender.Profile, profileName string, engine pmotrans.EngineID, transcoded bool) ContentFeatures {
	return ContentFeatures{
		ProfileName: profileName,
		OpFlags:     OrgOpFlags(renderer, engine, transcoded),
		Converted:   transcoded,
		SendCI:      true,
		Flags:       StreamingFlags,
		SendFlags:   renderer == nil || renderer.SendDLNAOrgFlags,
	}
}

// ImageFeatures builds the content features for an image or thumbnail
// variant. Images are fetched interactively, never streamed: no ORG_OP
// token, the interactive bitmask, and ORG_CI only when a conversion
// actually happens. Some Panasonic TVs choke on thumbnails carrying an
// explicit ORG_CI=0 next to a main resource without one, and DLNA
// defines a missing CI as 0 anyway.
func ImageFeatures(profile ImageProfile, converted bool) ContentFeatures {
	return ContentFeatures{
		ProfileName: profile.String(),
		Converted:   converted,
		SendCI:      converted,
		Flags:       InteractiveFlags,
		SendFlags:   true,
	}
}
