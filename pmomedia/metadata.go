package pmomedia

// AudioMetadata carries the tags extracted from an audio file.
type AudioMetadata struct {
	SongName  string
	Artist    string
	Composer  string
	Conductor string
	Album     string
	Genre     string
	Track     int
	Disc      int
	Year      int
	// Rating is nil when the file carries no rating tag; 0 is a valid
	// rating.
	Rating *int

	MusicBrainzTrackID   string
	MusicBrainzReleaseID string
	AudioTrackID         int
}

// VideoMetadata carries the enriched metadata looked up for a video
// file (TV episode identification, release year).
type VideoMetadata struct {
	TVEpisode     bool
	TVSeason      string
	TVEpisodeNum  string
	TVSeriesTitle string
	TVEpisodeName string
	Year          string
}

// IsTVEpisodeOrHasYear reports whether the metadata is rich enough for
// the movie object class.
func (v *VideoMetadata) IsTVEpisodeOrHasYear() bool {
	return v != nil && (v.TVEpisode || v.Year != "")
}
