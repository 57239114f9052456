package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Gamebook — опубликованная или черновая книга-игра. Slug уникален глобально,
// неопубликованные книги не видны игрокам.
type Gamebook struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Description string     `db:"description" json:"description"`
	CoverURL    string     `db:"cover_url" json:"coverUrl,omitempty"`
	IsPublished bool       `db:"is_published" json:"isPublished"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Node — узел графа повествования. Key уникален внутри книги без учета регистра.
type Node struct {
	ID         uuid.UUID `db:"id" json:"id"`
	GamebookID uuid.UUID `db:"gamebook_id" json:"gamebookId"`
	Key        string    `db:"key" json:"key"`
	Text       string    `db:"text" json:"text"`
	IsEnding   bool      `db:"is_ending" json:"isEnding"`

	Choices []Choice `json:"choices,omitempty"`
}

// Choice — направленное ребро графа. ToNodeKey остается символьной ссылкой
// и разрешается в узел только в момент перехода.
type Choice struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FromNodeID uuid.UUID `db:"from_node_id" json:"fromNodeId"`
	Label      string    `db:"label" json:"label"`
	ToNodeKey  string    `db:"to_node_key" json:"toNodeKey"`
	Requires   string    `db:"requires" json:"requires,omitempty"`
	Sets       string    `db:"sets" json:"sets,omitempty"`
	// Order — авторский порядок выбора внутри узла, как в документе импорта.
	Order int `db:"display_order" json:"order"`
}

// StartNodeKey — ключ узла, с которого начинается любое прохождение.
const StartNodeKey = "start"

// GamebookGraph — полный граф книги, загружаемый целиком для игрового цикла
// (граф read-mostly и разделяется всеми игроками книги).
type GamebookGraph struct {
	Gamebook   Gamebook              `json:"gamebook"`
	Attributes []AttributeDefinition `json:"attributes"`
	Nodes      []Node                `json:"nodes"`
}

// FindNode ищет узел по ключу без учета регистра.
func (g *GamebookGraph) FindNode(key string) (*Node, bool) {
	for i := range g.Nodes {
		if strings.EqualFold(g.Nodes[i].Key, key) {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}
