package model

// Dictionary entry kinds.
const (
	EntryVocab    = "vocab"
	EntryKanji    = "kanji"
	EntryGrammar  = "grammar"
	EntrySentence = "sentence"
)

// swagger:model DictionaryEntry
type DictionaryEntry struct {
	BaseModel

	EntryType string    `gorm:"size:20;index;not null" json:"entryType"`
	Keyword   string    `gorm:"size:255;index;not null" json:"keyword"`
	Reading   string    `gorm:"size:255" json:"reading"`
	Meaning   string    `gorm:"type:text" json:"meaning"`
	Extra     string    `gorm:"type:text" json:"extra"`
	JlptLevel JlptLevel `gorm:"size:2;index" json:"jlptLevel"`
}

func (DictionaryEntry) TableName() string {
	return "dictionary_entries"
}
