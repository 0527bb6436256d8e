package pmostore

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	log "github.com/sirupsen/logrus"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/didl"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/dlna"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmomedia"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
)

// URLProvider hands out the HTTP URLs under which the media server
// exposes streams, image renditions and sidecar subtitles.
type URLProvider interface {
	MediaURL(item *Item) string
	ImageURL(item *Item, profile dlna.ImageProfile) string
	ThumbnailURL(r Resource, profile dlna.ImageProfile) string
	SubtitleURL(item *Item) string
}

// Mapper turns store resources into DIDL-Lite objects for one renderer.
// It holds no mutable state and may be shared between requests.
type Mapper struct {
	Renderer *pmorender.Profile
	URLs     URLProvider
}

// MapResources maps a browse result list into one DIDL document. A nil
// entry is skipped, one broken entry never loses the whole listing.
func (m *Mapper) MapResources(resources []Resource) *didl.Document {
	doc := &didl.Document{}
	for _, r := range resources {
		if obj := m.MapResource(r); obj != nil {
			doc.Objects = append(doc.Objects, obj)
		}
	}
	return doc
}

// MapResource maps a single resource.
func (m *Mapper) MapResource(r Resource) *didl.Object {
	switch v := r.(type) {
	case *Container:
		return m.MapContainer(v)
	case *Item:
		return m.MapItem(v)
	case nil:
		return nil
	}
	log.Warnf("❌ cannot map unknown resource type %T", r)
	return nil
}

// MapContainer maps a folder.
func (m *Mapper) MapContainer(c *Container) *didl.Object {
	quirk := m.Renderer != nil && m.Renderer.VirtualFolderQuirk

	kind := didl.KindStorageFolder
	class := ""
	switch {
	case c.Playlist:
		kind = didl.KindPlaylistContainer
	case c.Class != "":
		kind = didl.KindForClass(c.Class)
		class = c.Class
	}
	if quirk && c.FakeParentID != "" {
		// The console browses its hardwired music folders by its own
		// ids; answer with the container class it expects there.
		switch c.FakeParentID {
		case "7":
			kind, class = didl.KindMusicAlbum, ""
		case "6":
			kind, class = didl.KindMusicArtist, ""
		case "5":
			kind, class = didl.KindMusicGenre, ""
		case "F":
			kind, class = didl.KindPlaylistContainer, ""
		}
	}

	id := c.ID
	parentID := c.ParentID
	if quirk {
		// Suffix our ids so the console cannot confuse them with its
		// own virtual folder ids.
		id += "$"
		if c.FakeParentID == "" {
			parentID += "$"
		}
	}

	obj := didl.NewContainer(kind, id, parentID, c.Name)
	obj.Class = class

	if !c.Discovered() && c.ChildrenCount() == 0 {
		// An unscanned folder reports zero children; some renderers
		// take that literally and hide the folder. Claim one child
		// until discovery fills in the truth.
		obj.ChildCount = 1
	} else {
		obj.ChildCount = c.ChildrenCount()
	}

	isAlbum := strings.HasPrefix(obj.UpnpClass(), "object.container.album")
	if isAlbum || c.DVDImage || (m.Renderer != nil && m.Renderer.SendFolderThumbnails) {
		m.appendThumbnails(obj, c, isAlbum)
	}
	return obj
}

// MapItem maps a playable entry.
func (m *Mapper) MapItem(i *Item) *didl.Object {
	renderer := m.Renderer
	mediaType := i.MediaType()
	subsValid := m.subsAreValidForStreaming(i)

	quirk := renderer != nil && renderer.VirtualFolderQuirk
	id := i.ID
	parentID := i.ParentID
	if quirk {
		id += "$"
		parentID += "$"
	}

	obj := didl.NewItem(m.classifyItem(i, mediaType), id, parentID, m.itemTitle(i))

	if renderer != nil && renderer.SamsungBookmark && i.Status != nil {
		obj.Props.Add(didl.NewProperty(didl.PropDCMInfo,
			fmt.Sprintf("CREATIONDATE=0,FOLDER=%s,BM=%d", obj.Title, i.Status.Bookmark)))
	}

	m.appendDate(obj, i)
	m.appendAudioMetadata(obj, i)
	m.appendVideoMetadata(obj, i)

	if mediaType == pmomedia.TypeImage {
		m.appendImageResources(obj, i)
	} else {
		m.appendMediaResources(obj, i, subsValid)
		m.appendAudioDesc(obj, i)
		m.appendSubtitles(obj, i, subsValid)
		m.appendThumbnails(obj, i, false)
	}
	return obj
}

// subsAreValidForStreaming decides whether the selected subtitle can be
// streamed as a sidecar next to the media.
func (m *Mapper) subsAreValidForStreaming(i *Item) bool {
	renderer := m.Renderer
	sub := i.Subtitle
	if renderer == nil || sub == nil || !i.Media.IsVideo() {
		return false
	}
	switch {
	case renderer.DisableSubtitles:
		log.Tracef("subtitles are disabled for %s", renderer.Name)
	case i.Transcoded() && !renderer.StreamSubsForTranscodedVideo:
		log.Tracef("subtitles %q are not streamable while transcoding to %s", sub.FileName, renderer.Name)
	case !sub.IsExternal():
		log.Tracef("subtitle track %d is embedded, cannot be streamed", sub.ID)
	case !renderer.IsExternalSubtitlesFormatSupported(sub.Format):
		log.Tracef("subtitle format %q is not supported by %s", sub.Format, renderer.Name)
	default:
		log.Tracef("external subtitles %q can be streamed to %s", sub.FileName, renderer.Name)
		return true
	}
	return false
}

func (m *Mapper) classifyItem(i *Item, mediaType pmomedia.MediaType) didl.ObjectKind {
	switch mediaType {
	case pmomedia.TypeImage:
		return didl.KindPhoto
	case pmomedia.TypeAudio:
		return didl.KindMusicTrack
	}
	if i.VideoMeta.IsTVEpisodeOrHasYear() {
		// The movie class carries the rich metadata fields; it is used
		// for TV episodes too.
		return didl.KindMovie
	}
	return didl.KindVideoItem
}

// itemTitle composes the display title: track metadata for audio, the
// file name otherwise, decorated with watched and resume markers.
func (m *Mapper) itemTitle(i *Item) string {
	renderer := m.Renderer
	title := i.Name
	if i.Media.IsAudio() && i.AudioMeta != nil && i.AudioMeta.SongName != "" {
		title = ""
		if renderer != nil && renderer.PrependTrackNumbers && i.AudioMeta.Track > 0 {
			// Zero pad for numeric sorting on every device.
			title = fmt.Sprintf("%03d - ", i.AudioMeta.Track)
		}
		title += i.AudioMeta.SongName
	}
	if i.FullyPlayed && (renderer == nil || !renderer.Thumbnails) {
		// Renderers showing our thumbnails already get the watched
		// overlay there, no need to decorate the name too.
		title = "[Watched] " + title
	}
	if i.Resume != nil {
		title = "Resume: " + title
	}
	return title
}

func (m *Mapper) appendDate(obj *didl.Object, i *Item) {
	renderer := m.Renderer
	if renderer != nil && renderer.SendDateMetadataYearForAudio && i.AudioMeta != nil && i.AudioMeta.Year > 1000 {
		obj.Props.Add(didl.NewProperty(didl.PropDate, fmt.Sprintf("%d", i.AudioMeta.Year)))
		return
	}
	if (renderer == nil || renderer.SendDateMetadata) && !i.LastModified.IsZero() {
		obj.Props.Add(didl.NewProperty(didl.PropDate, FormatDIDLDate(i.LastModified)))
	}
}

func (m *Mapper) appendAudioMetadata(obj *didl.Object, i *Item) {
	meta := i.AudioMeta
	if meta == nil || i.Media == nil {
		return
	}
	if meta.Album != "" {
		obj.Props.Add(didl.NewProperty(didl.PropAlbum, meta.Album))
	}
	if meta.Artist != "" {
		obj.Props.Add(didl.NewProperty(didl.PropArtist, meta.Artist))
		obj.Creator = meta.Artist
	}
	if meta.Composer != "" {
		obj.Props.Add(didl.NewProperty(didl.PropArtist, meta.Composer).WithAttr("role", "Composer"))
		obj.Props.Add(didl.NewProperty(didl.PropAuthor, meta.Composer).WithAttr("role", "Composer"))
	}
	if meta.Conductor != "" {
		obj.Props.Add(didl.NewProperty(didl.PropArtist, meta.Conductor).WithAttr("role", "Conductor"))
	}
	if meta.Genre != "" {
		obj.Props.Add(didl.NewProperty(didl.PropGenre, meta.Genre))
	}
	if meta.Track > 0 {
		obj.Props.Add(didl.NewProperty(didl.PropOriginalTrackNumber, fmt.Sprintf("%d", meta.Track)))
	}
	if meta.Rating != nil {
		obj.Props.Add(didl.NewProperty(didl.PropRating, fmt.Sprintf("%d", *meta.Rating)))
	}
}

func (m *Mapper) appendVideoMetadata(obj *didl.Object, i *Item) {
	meta := i.VideoMeta
	if meta == nil {
		return
	}
	if meta.TVEpisode {
		if meta.TVSeason != "" {
			obj.Props.Add(didl.NewProperty(didl.PropEpisodeSeason, meta.TVSeason))
		}
		if meta.TVEpisodeNum != "" {
			obj.Props.Add(didl.NewProperty(didl.PropEpisodeNumber, strings.TrimLeft(meta.TVEpisodeNum, "0")))
		}
		if meta.TVSeriesTitle != "" {
			obj.Props.Add(didl.NewProperty(didl.PropSeriesTitle, meta.TVSeriesTitle))
		}
		if meta.TVEpisodeName != "" {
			obj.Props.Add(didl.NewProperty(didl.PropProgramTitle, meta.TVEpisodeName))
		}
	}
	if i.Status != nil {
		obj.Props.Add(didl.NewProperty(didl.PropPlaybackCount, fmt.Sprintf("%d", i.Status.PlaybackCount)))
		if i.Status.LastPlaybackTime != "" {
			obj.Props.Add(didl.NewProperty(didl.PropLastPlaybackTime, i.Status.LastPlaybackTime))
		}
		if i.Status.LastPlaybackPosition != "" {
			obj.Props.Add(didl.NewProperty(didl.PropLastPlaybackPosition, i.Status.LastPlaybackPosition))
		}
	}
}

// appendMediaResources builds the main <res> elements. Renderers that
// require DLNA localization get one res per locale, each with the
// locale's own profile name.
func (m *Mapper) appendMediaResources(obj *didl.Object, i *Item, subsValid bool) {
	renderer := m.Renderer

	localeCount := 1
	if renderer != nil && renderer.DLNALocalization {
		localeCount = dlna.LocaleCount
	}

	mime := i.RendererMimeType()
	facts := &dlna.ItemFacts{
		MimeType:    mime,
		Media:       i.Media,
		Transcoding: i.Transcoding,
		Subtitle:    i.Subtitle,
	}

	for locale := 0; locale < localeCount; locale++ {
		res := &didl.Res{}

		features := dlna.ContentFeatures{}
		if renderer == nil || renderer.SendDLNAOrgFlags {
			pn := dlna.ResolveProfileID(renderer, facts, locale)
			features = dlna.StreamFeatures(renderer, pn, i.Transcoding.EngineID(), i.Transcoded())
		}
		res.ProtocolInfo = dlna.ProtocolInfo(mime, features)

		if subsValid && renderer != nil && renderer.OfferSubtitlesByProtocolInfo && !renderer.UseClosedCaption {
			res.Extra = append(res.Extra,
				didl.Attr{Name: "pv:subtitleFileType", Value: strings.ToUpper(i.Subtitle.Format)},
				didl.Attr{Name: "pv:subtitleFileUri", Value: m.URLs.SubtitleURL(i)})
		}

		m.fillResAttributes(res, i)
		res.Value = m.URLs.MediaURL(i) + transcodedExtension(i, renderer)
		obj.AddRes(res)
	}
}

// fillResAttributes populates size, duration and the codec facts. Each
// field independently picks the source value or the transcode target
// value, so a transcoded item can carry a source duration next to a
// target channel count.
func (m *Mapper) fillResAttributes(res *didl.Res, i *Item) {
	renderer := m.Renderer
	media := i.Media
	if media == nil || !media.Parsed {
		// Nothing parsed: advertise placeholders rather than dropping
		// the resource, a wrong size beats an invisible file.
		res.Size = TransSize
		res.Duration = "09:59:59"
		res.Bitrate = 1000000
		return
	}

	audioTrack := media.DefaultAudioTrack()
	videoTrack := media.DefaultVideoTrack()

	switch {
	case media.IsVideo():
		if !i.Transcoded() {
			res.Size = media.Size
		} else if renderer != nil && renderer.TranscodedSize != 0 {
			res.Size = renderer.TranscodedSize
		}
		if media.Duration > 0 {
			if i.Resume != nil {
				res.Duration = pmomedia.FormatDLNADuration(media.Duration - i.Resume.Offset)
			} else {
				res.Duration = media.DurationString()
			}
		}
		if videoTrack != nil {
			res.Resolution = videoTrack.Resolution()
			if videoTrack.BitDepth > 0 {
				res.ColorDepth = videoTrack.BitDepth
			}
		}
		res.FrameRate = media.FrameRate
		res.Bitrate = media.BitRate
		if audioTrack != nil {
			if audioTrack.Channels > 0 {
				if !i.Transcoded() {
					res.NrAudioChannels = audioTrack.Channels
				} else if renderer != nil && renderer.AudioChannelCount > 0 {
					res.NrAudioChannels = renderer.AudioChannelCount
				}
			}
			if audioTrack.SampleRate > 1 {
				res.SampleFrequency = audioTrack.SampleRate
			}
		}

	case media.IsAudio():
		res.Bitrate = media.BitRate
		if media.Duration > 0 {
			res.Duration = media.DurationString()
		}
		frequency := 0
		channels := 0
		if audioTrack != nil {
			if !i.Transcoded() {
				if audioTrack.SampleRate > 1 {
					res.SampleFrequency = audioTrack.SampleRate
				}
				if audioTrack.Channels > 0 {
					res.NrAudioChannels = audioTrack.Channels
				}
			} else {
				if renderer != nil && renderer.AudioResample {
					frequency = 48000
					if renderer.TranscodeAudioTo441 {
						frequency = 44100
					}
					channels = 2
				} else {
					frequency = audioTrack.SampleRate
					channels = audioTrack.Channels
				}
				if frequency > 0 {
					res.SampleFrequency = frequency
				}
				if channels > 0 {
					res.NrAudioChannels = channels
				}
			}
			res.BitsPerSample = audioTrack.BitDepth
		}
		if !i.Transcoded() {
			res.Size = media.Size
		} else if audioTrack != nil && media.Duration > 0 && frequency > 0 && channels > 0 {
			// Predict the LPCM/WAV output size.
			res.Size = int64(media.Duration * float64(frequency) * 2 * float64(channels))
		} else {
			res.Size = media.Size
		}

	default:
		res.Size = media.Size
	}
}

// transcodedExtension appends a fake extension to transcoded stream
// URLs so picky renderers recognise the output container.
func transcodedExtension(i *Item, renderer *pmorender.Profile) string {
	format := i.Transcoding.EncodingFormat()
	if format == nil || i.Media == nil {
		return ""
	}
	if i.Media.IsVideo() {
		switch {
		case format.IsTranscodeToHLS():
			return "_transcoded_to.m3u8"
		case format.IsTranscodeToMPEGTS():
			return "_transcoded_to.ts"
		case format.IsTranscodeToMP4():
			return "_transcoded_to.mp4"
		case format.IsTranscodeToWMV() && (renderer == nil || !renderer.VirtualFolderQuirk):
			return "_transcoded_to.wmv"
		default:
			return "_transcoded_to.mpg"
		}
	}
	if i.Media.IsAudio() {
		switch {
		case format.IsTranscodeToMP3():
			return "_transcoded_to.mp3"
		case format.IsTranscodeToWAV():
			return "_transcoded_to.wav"
		default:
			return "_transcoded_to.pcm"
		}
	}
	return ""
}

// appendAudioDesc attaches the tag identifiers control points use to
// match songs against their own databases.
func (m *Mapper) appendAudioDesc(obj *didl.Object, i *Item) {
	meta := i.AudioMeta
	if meta == nil || !i.Media.IsAudio() {
		return
	}
	content := etree.NewDocument()
	content.CreateElement("musicbrainztrackid").SetText(meta.MusicBrainzTrackID)
	content.CreateElement("musicbrainzreleaseid").SetText(meta.MusicBrainzReleaseID)
	content.CreateElement("audiotrackid").SetText(fmt.Sprintf("%d", meta.AudioTrackID))
	if meta.Disc > 0 {
		content.CreateElement("numberOfThisDisc").SetText(fmt.Sprintf("%d", meta.Disc))
	}
	if meta.Rating != nil {
		content.CreateElement("rating").SetText(fmt.Sprintf("%d", *meta.Rating))
	}
	s, err := content.WriteToString()
	if err != nil {
		return
	}
	obj.AddDesc(&didl.Desc{ID: "2", Type: "pmo-tags", Namespace: "http://pmoserv/tags", Content: s})
}

// appendSubtitles advertises streamable sidecar subtitles, either as
// the Samsung closed caption property or as a text resource.
func (m *Mapper) appendSubtitles(obj *didl.Object, i *Item, subsValid bool) {
	renderer := m.Renderer
	if !subsValid || renderer == nil {
		return
	}
	url := m.URLs.SubtitleURL(i)
	if renderer.UseClosedCaption {
		obj.Props.Add(didl.NewProperty(didl.PropCaptionInfoEx, url).WithAttr("sec:type", "srt"))
		return
	}
	if renderer.OfferSubtitlesAsResource {
		format := i.Subtitle.Format
		if format == "" {
			format = "plain"
		}
		obj.AddRes(&didl.Res{
			Value:        url,
			ProtocolInfo: "http-get:*:text/" + format + ":*",
		})
	}
}

// appendImageResources emits the rendition list for an image item plus
// the album art entries some renderers need even for photos.
func (m *Mapper) appendImageResources(obj *didl.Object, i *Item) {
	var image *pmomedia.ImageInfo
	if i.Media != nil {
		image = i.Media.Image
	}
	thumb := i.ThumbnailImageInfo()
	if image == nil {
		log.Debugf("image %q was not parsed when its DIDL entry was generated", i.Name)
	}

	elements := imageElements(m.Renderer, image, thumb)
	for _, e := range elements {
		m.addImageRes(obj, i, e)
	}
	for _, e := range elements {
		m.addAlbumArt(obj, i, e.profile)
	}
}

// appendThumbnails emits thumbnail res elements for a non-image
// resource and, for albums and art-hungry renderers, albumArtURI.
func (m *Mapper) appendThumbnails(obj *didl.Object, r Resource, isAlbum bool) {
	thumb := r.ThumbnailImageInfo()
	elements := thumbnailElements(m.Renderer, thumb)
	for _, e := range elements {
		url := m.URLs.ThumbnailURL(r, e.profile)
		if url == "" {
			continue
		}
		obj.AddRes(&didl.Res{
			Value:        url,
			ProtocolInfo: dlna.ProtocolInfo(e.profile.MimeType(), dlna.ImageFeatures(e.profile, e.hypothetical.ConversionNeeded)),
			Size:         e.size(),
			Resolution:   e.resolution(),
		})
	}
	if isAlbum || (m.Renderer != nil && m.Renderer.NeedAlbumArtHack) {
		for _, e := range elements {
			m.addAlbumArt(obj, r, e.profile)
		}
	}
}

func (m *Mapper) addImageRes(obj *didl.Object, i *Item, e imageResElement) {
	var url string
	if e.thumbnail {
		url = m.URLs.ThumbnailURL(i, e.profile)
	} else {
		url = m.URLs.ImageURL(i, e.profile)
	}
	if url == "" {
		return
	}
	obj.AddRes(&didl.Res{
		Value:        url,
		ProtocolInfo: dlna.ProtocolInfo(e.profile.MimeType(), dlna.ImageFeatures(e.profile, e.hypothetical.ConversionNeeded)),
		Size:         e.size(),
		Resolution:   e.resolution(),
	})
}

func (m *Mapper) addAlbumArt(obj *didl.Object, r Resource, profile dlna.ImageProfile) {
	if !allowedAsAlbumArt(m.Renderer, profile) {
		return
	}
	url := m.URLs.ThumbnailURL(r, profile)
	if url == "" {
		return
	}
	obj.Props.Add(didl.NewProperty(didl.PropAlbumArtURI, url).
		WithAttr("dlna:profileID", profile.String()))
}

// FormatDIDLDate renders a dc:date value. The formatting is stateless,
// safe from any goroutine.
func FormatDIDLDate(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
