package server_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goccy/tablenum/numbers"
	"github.com/goccy/tablenum/server"
	"github.com/goccy/tablenum/types"
)

type parseResult struct {
	Token string          `json:"token"`
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
	Error string          `json:"error"`
}

type tableResult struct {
	ID   string              `json:"id"`
	Rows [][]json.RawMessage `json:"rows"`
}

func newTestServer(t *testing.T, sources ...server.Source) *server.TestServer {
	t.Helper()
	s, err := server.New()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetLogLevel(server.LogLevelDebug); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(sources...); err != nil {
		t.Fatal(err)
	}
	testServer := s.TestServer()
	t.Cleanup(func() {
		testServer.Close()
		s.Close()
	})
	return testServer
}

func doRequest(t *testing.T, method, url string, body io.Reader, header map[string]string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	content, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode, content
}

func rawStrings(values []json.RawMessage) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		ret = append(ret, rawString(v))
	}
	return ret
}

func rawString(v json.RawMessage) string {
	if len(v) == 0 {
		return "null"
	}
	return string(v)
}

func decodeError(t *testing.T, content []byte) *server.ServerError {
	t.Helper()
	var v server.ResponseError
	if err := json.Unmarshal(content, &v); err != nil {
		t.Fatal(err)
	}
	if v.Error == nil || len(v.Error.Errors) != 1 {
		t.Fatalf("unexpected error response %s", string(content))
	}
	return v.Error.Errors[0]
}

func TestParse(t *testing.T) {
	testServer := newTestServer(t)
	status, content := doRequest(
		t,
		"POST",
		testServer.URL+"/parse",
		strings.NewReader(`{"tokens": [1, "2147483648", 9223372036854775808, "0x7f", "0.5", "1e400", "7s", "128y", "1__0"]}`),
		nil,
	)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}
	var res struct {
		Results []*parseResult `json:"results"`
	}
	if err := json.Unmarshal(content, &res); err != nil {
		t.Fatal(err)
	}
	type result struct {
		Token string
		Kind  string
		Value string
		Error bool
	}
	got := make([]result, 0, len(res.Results))
	for _, r := range res.Results {
		got = append(got, result{Token: r.Token, Kind: r.Kind, Value: rawString(r.Value), Error: r.Error != ""})
	}
	expected := []result{
		{Token: "1", Kind: "int32", Value: "1"},
		{Token: "2147483648", Kind: "int64", Value: "2147483648"},
		{Token: "9223372036854775808", Kind: "bigint", Value: "9223372036854775808"},
		{Token: "0x7f", Kind: "int32", Value: "127"},
		{Token: "0.5", Kind: "float64", Value: "0.5"},
		{Token: "1e400", Kind: "bigdecimal", Value: `"1E+400"`},
		{Token: "7s", Kind: "int16", Value: "7"},
		{Token: "128y", Value: "null", Error: true},
		{Token: "1__0", Value: "null", Error: true},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if !strings.Contains(res.Results[7].Error, "cannot save [128y]") {
		t.Errorf("unexpected overflow message %q", res.Results[7].Error)
	}
}

func TestParseWithType(t *testing.T) {
	testServer := newTestServer(t)
	status, content := doRequest(
		t,
		"POST",
		testServer.URL+"/parse",
		strings.NewReader(`{"tokens": ["12", "200", "1l"], "type": "TINYINT"}`),
		nil,
	)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}
	var res struct {
		Results []*parseResult `json:"results"`
	}
	if err := json.Unmarshal(content, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 3 {
		t.Fatalf("unexpected results %s", string(content))
	}
	if res.Results[0].Kind != "int8" || string(res.Results[0].Value) != "12" {
		t.Errorf("unexpected result %+v", res.Results[0])
	}
	if res.Results[1].Error == "" {
		t.Errorf("expected overflow for 200 but got %+v", res.Results[1])
	}
	if res.Results[2].Kind != "int64" {
		t.Errorf("expected postfix to win but got %+v", res.Results[2])
	}
}

func TestParseInvalidRequest(t *testing.T) {
	testServer := newTestServer(t)
	for _, test := range []struct {
		name string
		body string
	}{
		{name: "unsupported type", body: `{"tokens": ["1"], "type": "STRING"}`},
		{name: "broken json", body: `{"tokens": [`},
	} {
		t.Run(test.name, func(t *testing.T) {
			status, content := doRequest(t, "POST", testServer.URL+"/parse", strings.NewReader(test.body), nil)
			if status != http.StatusBadRequest {
				t.Fatalf("unexpected status %d", status)
			}
			if e := decodeError(t, content); e.Reason != server.Invalid {
				t.Fatalf("unexpected reason %s", e.Reason)
			}
		})
	}
}

func TestParseGzip(t *testing.T) {
	testServer := newTestServer(t)
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(`{"tokens": ["1_000L"]}`)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	status, content := doRequest(
		t,
		"POST",
		testServer.URL+"/parse",
		&buf,
		map[string]string{"Content-Encoding": "gzip"},
	)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}
	if !bytes.Contains(content, []byte(`"kind":"int64"`)) {
		t.Fatalf("unexpected response %s", string(content))
	}
}

func TestTables(t *testing.T) {
	testServer := newTestServer(
		t,
		server.YAMLSource(filepath.Join("testdata", "data.yaml")),
		server.JSONSource(filepath.Join("testdata", "data.json")),
	)

	t.Run("list", func(t *testing.T) {
		status, content := doRequest(t, "GET", testServer.URL+"/tables", nil, nil)
		if status != http.StatusOK {
			t.Fatalf("unexpected status %d", status)
		}
		var res server.TablesListResponse
		if err := json.Unmarshal(content, &res); err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"counters", "prices", "sizes"}, res.Tables); diff != "" {
			t.Errorf("(-want +got):\n%s", diff)
		}
	})
	for _, test := range []struct {
		id       string
		expected [][]string
	}{
		{
			id: "prices",
			expected: [][]string{
				{"1", `"12.50"`, "0.5", "null"},
				{"16", `"1E+400"`, "2", "true"},
				{"3", `"1000"`, "-0.25", "99"},
			},
		},
		{
			id: "counters",
			expected: [][]string{
				{"2147483647"},
				{"2147483648"},
				{"9223372036854775808"},
			},
		},
		{
			id: "sizes",
			expected: [][]string{
				{"127", "18446744073709551616", "1.5"},
				{"-128", "2361183241434822606847", "0.001"},
			},
		},
	} {
		test := test
		t.Run("get "+test.id, func(t *testing.T) {
			status, content := doRequest(t, "GET", testServer.URL+"/tables/"+test.id, nil, nil)
			if status != http.StatusOK {
				t.Fatalf("unexpected status %d: %s", status, string(content))
			}
			var res tableResult
			if err := json.Unmarshal(content, &res); err != nil {
				t.Fatal(err)
			}
			got := make([][]string, 0, len(res.Rows))
			for _, row := range res.Rows {
				got = append(got, rawStrings(row))
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
	t.Run("not found", func(t *testing.T) {
		status, content := doRequest(t, "GET", testServer.URL+"/tables/unknown", nil, nil)
		if status != http.StatusNotFound {
			t.Fatalf("unexpected status %d", status)
		}
		if e := decodeError(t, content); e.Reason != server.NotFound {
			t.Fatalf("unexpected reason %s", e.Reason)
		}
	})
}

func TestTablesInsertAndDelete(t *testing.T) {
	testServer := newTestServer(
		t,
		server.StructSource(
			types.NewTable("existing", types.NewColumn("v", types.INT)).AddRow("1"),
		),
	)
	body := `{"id": "created", "columns": [{"name": "v", "type": "LONG"}], "rows": [[1], ["0xff"]]}`
	status, content := doRequest(t, "POST", testServer.URL+"/tables", strings.NewReader(body), nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}
	var res tableResult
	if err := json.Unmarshal(content, &res); err != nil {
		t.Fatal(err)
	}
	if res.ID != "created" || len(res.Rows) != 2 || string(res.Rows[1][0]) != "255" {
		t.Fatalf("unexpected response %s", string(content))
	}

	status, content = doRequest(t, "POST", testServer.URL+"/tables", strings.NewReader(body), nil)
	if status != http.StatusConflict {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}
	if e := decodeError(t, content); e.Reason != server.Duplicate {
		t.Fatalf("unexpected reason %s", e.Reason)
	}

	overflow := `{"id": "overflow", "columns": [{"name": "v", "type": "BYTE"}], "rows": [["1000"]]}`
	status, content = doRequest(t, "POST", testServer.URL+"/tables", strings.NewReader(overflow), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d: %s", status, string(content))
	}

	invalid := `{"id": "invalid", "columns": [{"name": "v", "type": "STRING"}], "rows": []}`
	status, _ = doRequest(t, "POST", testServer.URL+"/tables", strings.NewReader(invalid), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", status)
	}

	status, _ = doRequest(t, "DELETE", testServer.URL+"/tables/created", nil, nil)
	if status != http.StatusNoContent {
		t.Fatalf("unexpected status %d", status)
	}
	status, _ = doRequest(t, "GET", testServer.URL+"/tables/created", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", status)
	}
	status, _ = doRequest(t, "DELETE", testServer.URL+"/tables/created", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", status)
	}
}

func TestUnknownRoute(t *testing.T) {
	testServer := newTestServer(t)
	status, content := doRequest(t, "GET", testServer.URL+"/unknown", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", status)
	}
	if e := decodeError(t, content); e.Reason != server.NotFound {
		t.Fatalf("unexpected reason %s", e.Reason)
	}
}

func TestLoadOverflow(t *testing.T) {
	s, err := server.New()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	err = s.Load(server.YAMLSource(filepath.Join("testdata", "overflow.yaml")))
	var overflow *numbers.OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected overflow error but got %v", err)
	}
	if overflow.Literal != "40000" || overflow.Kind != numbers.Int16 {
		t.Fatalf("unexpected overflow %+v", overflow)
	}
}

func TestLoggerSettings(t *testing.T) {
	s, err := server.New()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.SetLogFormat(server.LogFormatJSON); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLogLevel(server.LogLevelInfo); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLogLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown log level")
	}
	if err := s.SetLogFormat("xml"); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}
