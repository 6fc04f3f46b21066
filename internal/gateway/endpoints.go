package gateway

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"editdesk-cli/internal/model"
)

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type ReviewResult struct {
	Message string `json:"message"`
	File    string `json:"file"`
}

// ProcessReview asks the server to build the review-fee sheet for month (YYYY-MM).
func (c *Client) ProcessReview(ctx context.Context, month string) (ReviewResult, error) {
	const op = "process_review"
	month = strings.TrimSpace(month)
	if month == "" {
		return ReviewResult{}, validationErr(op, "choose a month")
	}
	if !monthRe.MatchString(month) {
		return ReviewResult{}, validationErr(op, "month must look like YYYY-MM")
	}
	var out struct {
		ReviewResult
		Error string `json:"error"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/process_review", nil, map[string]string{"target_month": month}, &out); err != nil {
		return ReviewResult{}, err
	}
	if out.Message == "" && out.Error != "" {
		return ReviewResult{}, &Error{Kind: KindServer, Op: op, Message: out.Error}
	}
	return out.ReviewResult, nil
}

type Filter string

const (
	FilterAll         Filter = "all"
	FilterUnprocessed Filter = "unprocessed"
)

func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterUnprocessed:
		return FilterUnprocessed, nil
	default:
		return "", validationErr("page_fee", "filter must be all or unprocessed")
	}
}

// PageFees loads the page-fee checklist rows.
func (c *Client) PageFees(ctx context.Context, filter Filter) ([]model.PageFeeRow, error) {
	const op = "page_fee"
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll && filter != FilterUnprocessed {
		return nil, validationErr(op, "filter must be all or unprocessed")
	}
	var rows []model.PageFeeRow
	if err := c.do(ctx, op, http.MethodGet, "/get_page_fee_data", url.Values{"filter": {string(filter)}}, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.PageFeeRow{}
	}
	return rows, nil
}

// ParseStatusType accepts the backend names and their English aliases.
func ParseStatusType(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case model.StatusAccepted, "accepted", "accept":
		return model.StatusAccepted, nil
	case model.StatusInvoiced, "invoiced", "invoice":
		return model.StatusInvoiced, nil
	default:
		return "", validationErr("update_status", "status must be accepted (录用) or invoiced (发票)")
	}
}

// UpdateStatus sets one checkbox of one manuscript's page-fee row.
func (c *Client) UpdateStatus(ctx context.Context, manuscript, statusType string, checked bool) (string, error) {
	const op = "update_status"
	manuscript = strings.TrimSpace(manuscript)
	if manuscript == "" {
		return "", validationErr(op, "missing manuscript number")
	}
	st, err := ParseStatusType(statusType)
	if err != nil {
		return "", err
	}
	body := struct {
		Manuscript string `json:"稿件编号"`
		StatusType string `json:"statusType"`
		IsChecked  bool   `json:"isChecked"`
	}{manuscript, st, checked}
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/update_status", nil, body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

type Article struct {
	Title     string `json:"title"`
	ImagePath string `json:"image_path"`
}

type ScrapeResult struct {
	Year          model.Text `json:"year"`
	Issue         model.Text `json:"issue"`
	ArticlesCount int        `json:"articles_count"`
	Articles      []Article  `json:"processed_articles"`
}

// StartScraping runs the journal scraper for one issue and waits for its summary.
func (c *Client) StartScraping(ctx context.Context, year, issue string) (ScrapeResult, error) {
	var out ScrapeResult
	body := map[string]string{"year": strings.TrimSpace(year), "issue": strings.TrimSpace(issue)}
	if err := c.do(ctx, "start_scraping", http.MethodPost, "/start_scraping", nil, body, &out); err != nil {
		return ScrapeResult{}, err
	}
	return out, nil
}

// LoadNotes returns the server copy of every note it has.
func (c *Client) LoadNotes(ctx context.Context) (map[string]string, error) {
	var raw map[string]model.Text
	if err := c.do(ctx, "load_notes", http.MethodGet, "/load_notes", nil, nil, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = string(v)
	}
	return out, nil
}

// SaveNotes replaces the server copy of all notes.
func (c *Client) SaveNotes(ctx context.Context, notes map[string]string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if notes == nil {
		notes = map[string]string{}
	}
	if err := c.do(ctx, "save_notes", http.MethodPost, "/save_notes", nil, notes, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// OpenFolder asks the server machine to open the journal folder.
func (c *Client) OpenFolder(ctx context.Context) (string, error) {
	return c.openFolder(ctx, "open_folder", "/open_folder")
}

// OpenProgramFolder asks the server machine to open the automation scripts folder.
func (c *Client) OpenProgramFolder(ctx context.Context) (string, error) {
	return c.openFolder(ctx, "open_program_folder", "/open_program_folder")
}

func (c *Client) openFolder(ctx context.Context, op, path string) (string, error) {
	var out struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &out); err != nil {
		return "", err
	}
	if out.Message == "" {
		msg := out.Error
		if msg == "" {
			msg = "server returned no message"
		}
		return "", &Error{Kind: KindServer, Op: op, Message: msg}
	}
	return out.Message, nil
}

// Chat sends one message to the assistant and returns its markdown reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	const op = "chat"
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validationErr(op, "message is empty")
	}
	var out struct {
		Response string `json:"response"`
		Error    string `json:"error"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/chat", nil, map[string]string{"message": message}, &out); err != nil {
		return "", err
	}
	if out.Response == "" {
		msg := out.Error
		if msg == "" {
			msg = "assistant returned an empty reply"
		}
		return "", &Error{Kind: KindServer, Op: op, Message: msg}
	}
	return out.Response, nil
}
