package prints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const selectPrintSQL = `
SELECT p.id, p.title, p.originalTitle, p.printType,
       c.name AS publisherName, b.name AS brandName,
       p.publicationDate, p.issueNumber, s.title AS seriesName,
       p.description, p.ndl, p.ownedType
FROM prints AS p
LEFT JOIN publishers AS c ON c.id = p.publisherId
LEFT JOIN brands AS b ON b.id = p.brandId
LEFT JOIN series AS s ON s.id = p.seriesId
WHERE p.id = ?`

const selectRelatedPersonsSQL = `
SELECT r.orderNo, r.personId, p.name AS personName, r.role, r.description
FROM related_persons AS r
JOIN persons AS p ON p.id = r.personId
WHERE r.relatedType = ? AND r.relatedId = ?
ORDER BY r.orderNo, r.id`

const selectRelatedLinksSQL = `
SELECT l.orderNo, l.linkType, l.url, l.alt, l.description
FROM related_links AS l
WHERE l.relatedType = ? AND l.relatedId = ?
ORDER BY l.orderNo, l.id`

// workIdがNULLならw.titleもNULLなので、目次自身のtitleが使われる。
const selectContentsSQL = `
SELECT c.orderNo, c.workId, COALESCE(w.title, c.title) AS title,
       c.subTitle, c.description, c.pageNo
FROM contents AS c
LEFT JOIN works AS w ON w.id = c.workId
WHERE c.printId = ?
ORDER BY c.orderNo, c.id`

// Repository は1つのデータベース接続に対してパラメータ化されたクエリを発行する。
type Repository struct {
	db *sql.DB
}

// NewRepository はdbを使うRepositoryを返す。
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetPrint は出版物の主レコードを取得する。
// 出版社・ブランド・シリーズはLEFT JOINで解決し、紐付きが無ければnilになる。
// 関連人物・リンク・目次は含まない。
func (r *Repository) GetPrint(ctx context.Context, id int64) (*Detail, error) {
	var (
		d                                 Detail
		originalTitle, printType, pubDate sql.NullString
		publisher, brand, issue, series   sql.NullString
		description, ndl, ownedType       sql.NullString
	)

	err := r.db.QueryRowContext(ctx, selectPrintSQL, id).Scan(
		&d.ID, &d.Title, &originalTitle, &printType,
		&publisher, &brand,
		&pubDate, &issue, &series,
		&description, &ndl, &ownedType,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPrintNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("出版物(id=%d)の取得に失敗: %w", id, err)
	}

	d.OriginalTitle = originalTitle.String
	d.PrintType = printType.String
	d.PublisherName = nullableString(publisher)
	d.BrandName = nullableString(brand)
	d.PublicationDate = pubDate.String
	d.IssueNumber = nullableString(issue)
	d.SeriesName = nullableString(series)
	d.Description = description.String
	d.NDL = nullableString(ndl)
	d.OwnedType = ownedType.String
	return &d, nil
}

// ListRelatedPersons はrefに紐付く関連人物をorderNo順に返す。
func (r *Repository) ListRelatedPersons(ctx context.Context, ref RelatedRef) ([]RelatedPerson, error) {
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("未知の紐付け種別です: %q", ref.Kind)
	}

	rows, err := r.db.QueryContext(ctx, selectRelatedPersonsSQL, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("関連人物(%s)の取得に失敗: %w", ref, err)
	}
	defer func() { _ = rows.Close() }()

	persons := make([]RelatedPerson, 0)
	for rows.Next() {
		var (
			p                 RelatedPerson
			role, description sql.NullString
		)
		if err := rows.Scan(&p.OrderNo, &p.PersonID, &p.PersonName, &role, &description); err != nil {
			return nil, fmt.Errorf("関連人物(%s)の読み取りに失敗: %w", ref, err)
		}
		p.Role = role.String
		p.Description = description.String
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("関連人物(%s)の読み取りに失敗: %w", ref, err)
	}
	return persons, nil
}

// ListRelatedLinks はrefに紐付く関連リンクをorderNo順に返す。
func (r *Repository) ListRelatedLinks(ctx context.Context, ref RelatedRef) ([]RelatedLink, error) {
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("未知の紐付け種別です: %q", ref.Kind)
	}

	rows, err := r.db.QueryContext(ctx, selectRelatedLinksSQL, string(ref.Kind), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("関連リンク(%s)の取得に失敗: %w", ref, err)
	}
	defer func() { _ = rows.Close() }()

	links := make([]RelatedLink, 0)
	for rows.Next() {
		var (
			l                     RelatedLink
			linkType              string
			alt, description, url sql.NullString
		)
		if err := rows.Scan(&l.OrderNo, &linkType, &url, &alt, &description); err != nil {
			return nil, fmt.Errorf("関連リンク(%s)の読み取りに失敗: %w", ref, err)
		}
		l.LinkType = LinkType(linkType)
		l.URL = url.String
		l.Alt = alt.String
		l.Description = description.String
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("関連リンク(%s)の読み取りに失敗: %w", ref, err)
	}
	return links, nil
}

// ListContents は出版物の目次をorderNoの昇順で返す。
func (r *Repository) ListContents(ctx context.Context, printID int64) ([]Content, error) {
	rows, err := r.db.QueryContext(ctx, selectContentsSQL, printID)
	if err != nil {
		return nil, fmt.Errorf("目次(printId=%d)の取得に失敗: %w", printID, err)
	}
	defer func() { _ = rows.Close() }()

	contents := make([]Content, 0)
	for rows.Next() {
		var (
			c                            Content
			workID, pageNo               sql.NullInt64
			title, subTitle, description sql.NullString
		)
		if err := rows.Scan(&c.OrderNo, &workID, &title, &subTitle, &description, &pageNo); err != nil {
			return nil, fmt.Errorf("目次(printId=%d)の読み取りに失敗: %w", printID, err)
		}
		c.WorkID = nullableInt64(workID)
		c.Title = title.String
		c.SubTitle = subTitle.String
		c.Description = description.String
		c.PageNo = nullableInt64(pageNo)
		contents = append(contents, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("目次(printId=%d)の読み取りに失敗: %w", printID, err)
	}
	return contents, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}
