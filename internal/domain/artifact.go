package domain

import "time"

// Category enumerates supported content categories.
type Category string

const (
	CategoryDataEngineering   Category = "data-engineering"
	CategoryAI                Category = "ai"
	CategoryDataScience       Category = "data-science"
	CategoryTechnology        Category = "technology"
	CategoryProgramming       Category = "programming"
	CategoryMachineLearning   Category = "machine-learning"
	CategoryWebDevelopment    Category = "web-development"
	CategoryMobileDevelopment Category = "mobile-development"
)

// Difficulty enumerates target difficulty levels.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ContentSource records how an artifact came to exist.
type ContentSource string

const (
	ContentSourceManual      ContentSource = "manual"
	ContentSourceAIGenerated ContentSource = "ai-generated"
	ContentSourceUploaded    ContentSource = "uploaded"
)

// GenerationStatus enumerates the artifact generation lifecycle. The AI
// pipeline moves a row generating → completed (or failed); manual uploads
// reserve their row as pending before the bytes are stored.
type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusGenerating GenerationStatus = "generating"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// ContentArtifact is the durable output of one generation run: the script,
// references to the narration and video assets, and bookkeeping about which
// tools produced each stage.
type ContentArtifact struct {
	ID             string
	Title          string
	Description    string
	Script         string
	AudioURL       string
	VideoURL       string
	ThumbnailURL   string
	Duration       int
	Category       Category
	Difficulty     Difficulty
	Tags           string
	ContentSource  ContentSource
	Status         GenerationStatus
	Prompt         string
	ToolsUsed      []string
	Metadata       map[string]any
	VoiceSettings  map[string]any
	VisualStyle    string
	TargetAudience string
	CreatorID      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Creator is the minimal owner record the pipeline needs. Identity management
// itself lives outside this service.
type Creator struct {
	ID        string
	UserID    string
	Name      string
	Username  string
	Bio       string
	AvatarURL string
	Verified  bool
	CreatedAt time.Time
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryDataEngineering, CategoryAI, CategoryDataScience, CategoryTechnology,
		CategoryProgramming, CategoryMachineLearning, CategoryWebDevelopment, CategoryMobileDevelopment:
		return true
	}
	return false
}

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
