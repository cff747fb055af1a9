package airtable

import (
	gojson "github.com/goccy/go-json"
)

// Semantic aliases used for disambiguation in signatures. Record IDs look
// like "recAdw9EjV90xbZ"; timestamps are ISO 8601 UTC strings such as
// "2023-05-22T21:24:15.333134Z"; field names can be any valid string.
type (
	RecordID  = string
	Timestamp = string
	FieldName = string
)

// Fields maps field names to field values. A value may be nil when the
// service omits it.
type Fields = map[FieldName]any

// Thumbnail is one rendition in an attachment's thumbnail map.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Attachment is a file stored in an attachments field.
type Attachment struct {
	ID         string               `json:"id"`
	URL        string               `json:"url"`
	Type       string               `json:"type,omitempty"`
	Filename   string               `json:"filename,omitempty"`
	Size       int                  `json:"size,omitempty"`
	Height     int                  `json:"height,omitempty"`
	Width      int                  `json:"width,omitempty"`
	Thumbnails map[string]Thumbnail `json:"thumbnails,omitempty"`
}

// CreateAttachment is a new attachment payload before upload. The server
// assigns the id.
type CreateAttachment struct {
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
}

// Collaborator is a user reference returned by the service.
type Collaborator struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}

// CollaboratorEmail is a user reference supplied by email only; the service
// resolves the id.
type CollaboratorEmail struct {
	Email string `json:"email"`
}

// Barcode is a scanned barcode value.
type Barcode struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// Button is a clickable button field value. URL is nil when the service
// returned null.
type Button struct {
	Label string  `json:"label"`
	URL   *string `json:"url"`
}

// Record is a full record as returned by the service.
type Record struct {
	ID          RecordID  `json:"id"`
	CreatedTime Timestamp `json:"createdTime"`
	Fields      Fields    `json:"fields"`
}

// DeletedRecord confirms a deletion.
type DeletedRecord struct {
	ID      RecordID `json:"id"`
	Deleted bool     `json:"deleted"`
}

// RecordFromMap validates m against RecordDict and returns the typed view.
func RecordFromMap(m any) (Record, error) {
	v, err := ValidateOne(RecordDict, m)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := decodeInto(v, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// DeletedRecordFromMap validates m against RecordDeletedDict and returns the
// typed view.
func DeletedRecordFromMap(m any) (DeletedRecord, error) {
	v, err := ValidateOne(RecordDeletedDict, m)
	if err != nil {
		return DeletedRecord{}, err
	}
	var del DeletedRecord
	if err := decodeInto(v, &del); err != nil {
		return DeletedRecord{}, err
	}
	return del, nil
}

// decodeInto converts an already-validated map into a typed struct by
// round-tripping through the JSON codec. Validation has fixed the structure,
// so a decode failure here indicates a codec bug, not bad input.
func decodeInto(m any, out any) error {
	b, err := gojson.Marshal(m)
	if err != nil {
		return err
	}
	return gojson.Unmarshal(b, out)
}
