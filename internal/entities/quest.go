package entities

// QuestState is the player's progress on one quest
type QuestState string

// Quest states
const (
	QuestActive    QuestState = "active"
	QuestCompleted QuestState = "completed"
)

// Quest is a read-only content record
type Quest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
