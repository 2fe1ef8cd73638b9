package prints

import (
	"errors"
	"fmt"
)

// ErrPrintNotFound は指定IDの出版物が存在しないことを表す。
var ErrPrintNotFound = errors.New("出版物が見つかりません")

// RelatedKind は関連人物・関連リンクの紐付け先エンティティの種類。
// related_persons / related_links の relatedType 列に格納される値と一致する。
type RelatedKind string

const (
	// KindPrint は出版物への紐付け。
	KindPrint RelatedKind = "PRINT"
	// KindWork は作品への紐付け。
	KindWork RelatedKind = "WORK"
)

// Valid はkが既知の種類であればtrueを返す。
func (k RelatedKind) Valid() bool {
	switch k {
	case KindPrint, KindWork:
		return true
	default:
		return false
	}
}

// RelatedRef は (relatedType, relatedId) の多態的な紐付け先を表すタグ付き参照。
type RelatedRef struct {
	Kind RelatedKind
	ID   int64
}

// PrintRef は出版物idへの参照を返す。
func PrintRef(id int64) RelatedRef {
	return RelatedRef{Kind: KindPrint, ID: id}
}

func (r RelatedRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// LinkType は関連リンクの種類。
type LinkType string

const (
	// LinkTypeImage は画像（書影など）へのリンク。
	LinkTypeImage LinkType = "IMAGE"
	// LinkTypeHyperlink は外部ページへのハイパーリンク。
	LinkTypeHyperlink LinkType = "LINK"
)

// Valid はtが既知の種類であればtrueを返す。
func (t LinkType) Valid() bool {
	return t == LinkTypeImage || t == LinkTypeHyperlink
}

// IsImage は画像リンクであればtrueを返す。
func (t LinkType) IsImage() bool {
	return t == LinkTypeImage
}

// Detail は出版物詳細ページに渡す非正規化済みのレコード。
type Detail struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	OriginalTitle   string  `json:"originalTitle"`
	PrintType       string  `json:"printType"`
	PublisherName   *string `json:"publisherName"`
	BrandName       *string `json:"brandName"`
	PublicationDate string  `json:"publicationDate"`
	IssueNumber     *string `json:"issueNumber"`
	SeriesName      *string `json:"seriesName"`
	Description     string  `json:"description"`
	// NDL は国立国会図書館の書誌ID。
	NDL       *string `json:"ndl"`
	OwnedType string  `json:"ownedType"`

	RelatedPersons []RelatedPerson `json:"relatedPersons"`
	RelatedLinks   []RelatedLink   `json:"relatedLinks"`
	Contents       []Content       `json:"contents"`
}

// RelatedPerson は出版物に役割付きで紐付く人物。
type RelatedPerson struct {
	OrderNo     int64  `json:"orderNo"`
	PersonID    int64  `json:"personId"`
	PersonName  string `json:"personName"`
	Role        string `json:"role"`
	Description string `json:"description"`
}

// RelatedLink は出版物に紐付く画像またはハイパーリンク。
type RelatedLink struct {
	OrderNo     int64    `json:"orderNo"`
	LinkType    LinkType `json:"linkType"`
	URL         string   `json:"url"`
	Alt         string   `json:"alt"`
	Description string   `json:"description"`
}

// Content は目次の1エントリ。
// WorkIDが設定されている場合、Titleは作品のタイトルになる。
type Content struct {
	OrderNo     int64  `json:"orderNo"`
	WorkID      *int64 `json:"workId"`
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle"`
	Description string `json:"description"`
	PageNo      *int64 `json:"pageNo"`
}
