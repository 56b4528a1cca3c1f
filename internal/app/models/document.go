package models

type Document struct {
	ID           string            `json:"id" bson:"_id"`
	OwnerID      string            `json:"ownerId" bson:"ownerId"`
	RequestID    string            `json:"requestId,omitempty" bson:"requestId,omitempty"`
	DocumentType string            `json:"documentType" bson:"documentType"`
	FileName     string            `json:"fileName" bson:"fileName"`
	ObjectName   string            `json:"-" bson:"objectName"`
	MimeType     string            `json:"mimeType" bson:"mimeType"`
	Size         int64             `json:"size" bson:"size"`
	Analysis     *DocumentAnalysis `json:"analysis,omitempty" bson:"analysis,omitempty"`
	TimeModel    `bson:",inline"`
}

type DocumentAnalysis struct {
	DocumentType  string         `json:"documentType" bson:"documentType"`
	IsValid       bool           `json:"isValid" bson:"isValid"`
	Confidence    float64        `json:"confidence" bson:"confidence"`
	ExtractedData map[string]any `json:"extractedData" bson:"extractedData"`
	Warnings      []string       `json:"warnings" bson:"warnings"`
}
