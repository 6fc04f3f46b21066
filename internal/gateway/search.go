package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"editdesk-cli/internal/model"
)

type SearchType string

const (
	SearchEmployee   SearchType = "employee"
	SearchEmployeeID SearchType = "id"
	SearchManuscript SearchType = "manuscript"
)

var SearchTypes = []SearchType{SearchEmployee, SearchEmployeeID, SearchManuscript}

func ParseSearchType(s string) (SearchType, error) {
	switch SearchType(strings.ToLower(strings.TrimSpace(s))) {
	case SearchEmployee:
		return SearchEmployee, nil
	case SearchEmployeeID:
		return SearchEmployeeID, nil
	case SearchManuscript:
		return SearchManuscript, nil
	default:
		return "", validationErr("search", fmt.Sprintf("unknown search type: %s", s))
	}
}

// Employee is one staff record.
type Employee struct {
	Name       model.Text `json:"姓名"`
	Number     model.Text `json:"工号"`
	Department model.Text `json:"部门"`
}

// ReviewRecord is one review or re-review of a manuscript.
type ReviewRecord struct {
	Manuscript model.Text `json:"稿件编号"`
	Reviewer   model.Text `json:"审稿人姓名"`
	ReturnedAt model.Text `json:"审回时间"`
}

// SearchResult is either an EmployeeResult or a ManuscriptResult.
type SearchResult interface {
	isSearchResult()
}

type EmployeeResult struct {
	Employees []Employee `json:"employees"`
}

type ManuscriptResult struct {
	Review   []ReviewRecord `json:"review"`
	ReReview []ReviewRecord `json:"reReview"`
}

func (EmployeeResult) isSearchResult()   {}
func (ManuscriptResult) isSearchResult() {}

type searchEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Search looks up employees by name or number, or manuscripts by id.
func (c *Client) Search(ctx context.Context, typ SearchType, value string) (SearchResult, error) {
	const op = "search"
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, validationErr(op, "enter something to search for")
	}

	var path string
	q := url.Values{}
	switch typ {
	case SearchEmployee:
		path = "/query_employee"
		q.Set("name", value)
	case SearchEmployeeID:
		path = "/query_employee"
		q.Set("employee_id", value)
	case SearchManuscript:
		path = "/query_manuscript"
		q.Set("query", value)
	default:
		return nil, validationErr(op, fmt.Sprintf("unknown search type: %s", typ))
	}

	var env searchEnvelope
	if err := c.do(ctx, op, http.MethodGet, path, q, nil, &env); err != nil {
		return nil, err
	}
	return decodeSearch(env)
}

func decodeSearch(env searchEnvelope) (SearchResult, error) {
	const op = "search"
	switch env.Type {
	case "employee":
		var emps []Employee
		if err := decodeData(env.Data, &emps); err != nil {
			return nil, &Error{Kind: KindDecode, Op: op, Message: "malformed employee result", Err: err}
		}
		return EmployeeResult{Employees: emps}, nil
	case "manuscript":
		var data struct {
			Review   []ReviewRecord `json:"review"`
			ReReview []ReviewRecord `json:"re_review"`
		}
		if err := decodeData(env.Data, &data); err != nil {
			return nil, &Error{Kind: KindDecode, Op: op, Message: "malformed manuscript result", Err: err}
		}
		return ManuscriptResult{Review: data.Review, ReReview: data.ReReview}, nil
	default:
		return nil, &Error{Kind: KindUnknownType, Op: op, Message: fmt.Sprintf("unknown result type: %q", env.Type)}
	}
}

func decodeData(raw json.RawMessage, out any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, out)
}
