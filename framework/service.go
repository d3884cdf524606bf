package framework

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	defaultRequestTimeout = time.Second * 30
	healthPollInterval    = time.Millisecond * 100
	requestIDHeader       = "X-Request-Id"
)

// ServiceClient sends requests to the service under test and normalizes every outcome
// into a Response. It never retries; any retry policy belongs to the test that uses it.
type ServiceClient struct {
	baseURL        string
	httpClient     *http.Client
	defaultTimeout time.Duration
	observer       RequestObserver
}

// RequestObserver is notified after every request, e.g. to collect latency metrics.
type RequestObserver interface {
	ObserveRequest(endpoint string, resp Response)
}

// RequestParams describes one request. Body is encoded as JSON unless RawBody or
// Multipart is set.
type RequestParams struct {
	Method string
	Path   string
	// Endpoint is a low-cardinality name for the request used in metrics; defaults to Path.
	Endpoint        string
	Body            interface{}
	RawBody         []byte
	Multipart       *MultipartFile
	Headers         map[string]string
	ContentType     string
	OmitContentType bool
	Timeout         time.Duration
}

// MultipartFile is a single file sent as multipart/form-data.
type MultipartFile struct {
	FieldName   string
	FileName    string
	ContentType string
	Data        []byte
}

// RequestInfo is what was actually sent, kept so a failing request can be reproduced.
type RequestInfo struct {
	Method      string
	URL         string
	ContentType string
	Body        []byte
}

// Response is the normalized outcome of a request.
//
// Status is undefined if no HTTP response was received at all (connection refused,
// timeout); Err then says why. Body is always a JSON value: if the response body could
// not be parsed as JSON, Body is an object whose "error" property is the raw text.
type Response struct {
	Request RequestInfo
	Status  ldvalue.OptionalInt
	Header  http.Header
	Body    ldvalue.Value
	Raw     []byte
	Elapsed time.Duration
	Err     error
}

func NewServiceClient(baseURL string, defaultTimeout time.Duration, observer RequestObserver) *ServiceClient {
	if defaultTimeout <= 0 {
		defaultTimeout = defaultRequestTimeout
	}
	return &ServiceClient{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     &http.Client{},
		defaultTimeout: defaultTimeout,
		observer:       observer,
	}
}

func (c *ServiceClient) BaseURL() string {
	return c.baseURL
}

// Do performs a single request/response cycle.
func (c *ServiceClient) Do(params RequestParams, logger Logger) Response {
	if logger == nil {
		logger = NullLogger()
	}
	method := params.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = c.defaultTimeout
	}

	resp := Response{
		Request: RequestInfo{Method: method, URL: c.baseURL + params.Path},
		Body:    ldvalue.Null(),
	}
	body, contentType, err := encodeRequestBody(params)
	if err != nil {
		resp.Err = err
		return resp
	}
	if !params.OmitContentType {
		if params.ContentType != "" {
			contentType = params.ContentType
		}
		resp.Request.ContentType = contentType
	}
	resp.Request.Body = body

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, resp.Request.URL, bodyReader)
	if err != nil {
		resp.Err = err
		return resp
	}
	if resp.Request.ContentType != "" {
		req.Header.Set("Content-Type", resp.Request.ContentType)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	for k, v := range params.Headers {
		req.Header.Set(k, v)
	}

	logger.Printf(">> %s %s %s", method, params.Path, abbreviate(body))
	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err == nil {
		resp.Raw, err = io.ReadAll(httpResp.Body)
		_ = httpResp.Body.Close()
		resp.Header = httpResp.Header
		if err == nil {
			resp.Status = ldvalue.NewOptionalInt(httpResp.StatusCode)
		}
	}
	resp.Elapsed = time.Since(start)
	if err != nil {
		resp.Err = classifyTransportError(err, timeout)
		logger.Printf("<< %s %s: %s (%s)", method, params.Path, resp.Err, resp.Elapsed)
	} else {
		resp.Body = parseBody(resp.Raw)
		logger.Printf("<< %s %s: %d (%s) %s", method, params.Path, resp.Status.IntValue(), resp.Elapsed, abbreviate(resp.Raw))
	}

	if c.observer != nil {
		endpoint := params.Endpoint
		if endpoint == "" {
			endpoint = params.Path
		}
		c.observer.ObserveRequest(endpoint, resp)
	}
	return resp
}

func encodeRequestBody(params RequestParams) ([]byte, string, error) {
	switch {
	case params.Multipart != nil:
		buf := bytes.NewBuffer(nil)
		w := multipart.NewWriter(buf)
		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name=%q; filename=%q`, params.Multipart.FieldName, params.Multipart.FileName),
		}
		if params.Multipart.ContentType != "" {
			header["Content-Type"] = []string{params.Multipart.ContentType}
		}
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(params.Multipart.Data); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), w.FormDataContentType(), nil
	case params.RawBody != nil:
		return params.RawBody, "application/json", nil
	case params.Body != nil:
		data, err := json.Marshal(params.Body)
		if err != nil {
			return nil, "", fmt.Errorf("could not encode request body: %w", err)
		}
		return data, "application/json", nil
	default:
		return nil, "", nil
	}
}

func parseBody(raw []byte) ldvalue.Value {
	var v ldvalue.Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return ldvalue.ObjectBuild().Set("error", ldvalue.String(string(raw))).Build()
	}
	return v
}

func classifyTransportError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out after %s", timeout)
	}
	return err
}

func abbreviate(data []byte) string {
	const limit = 300
	if len(data) <= limit {
		return string(data)
	}
	return fmt.Sprintf("%s... (%d bytes)", string(data[:limit]), len(data))
}

// Reachable is true if an HTTP response was received, whatever its status.
func (r Response) Reachable() bool {
	return r.Status.IsDefined()
}

// StatusIn is true if a response was received and its status is one of codes.
func (r Response) StatusIn(codes ...int) bool {
	if !r.Status.IsDefined() {
		return false
	}
	for _, code := range codes {
		if r.Status.IntValue() == code {
			return true
		}
	}
	return false
}

// Success is true for any 2xx status.
func (r Response) Success() bool {
	return r.Status.IsDefined() && r.Status.IntValue() >= 200 && r.Status.IntValue() < 300
}

// Get queries the normalized body with a gjson path such as "tourPlan.intro" or "pois.#".
func (r Response) Get(path string) gjson.Result {
	return gjson.Get(r.Body.JSONString(), path)
}

// Describe summarizes the outcome for failure messages.
func (r Response) Describe() string {
	if !r.Reachable() {
		return fmt.Sprintf("%s %s: no response (%s)", r.Request.Method, r.Request.URL, r.Err)
	}
	return fmt.Sprintf("%s %s: status %d, body %s", r.Request.Method, r.Request.URL, r.Status.IntValue(), abbreviate(r.Raw))
}

// StatusString is the status code, or "none" if there was no response.
func (r Response) StatusString() string {
	if !r.Reachable() {
		return "none"
	}
	return fmt.Sprintf("%d", r.Status.IntValue())
}

// AwaitHealthy polls the health resource until it returns 200 or the timeout expires.
func (c *ServiceClient) AwaitHealthy(path string, timeout time.Duration, output io.Writer) (Response, error) {
	fmt.Fprintf(output, "Connecting to service at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp := c.Do(RequestParams{Method: http.MethodGet, Path: path, Timeout: timeout}, nil)
		if resp.Reachable() {
			fmt.Fprintln(output)
			if resp.Status.IntValue() != http.StatusOK {
				return resp, fmt.Errorf("service health check returned status code %d", resp.Status.IntValue())
			}
			fmt.Fprintf(output, "Health query returned: %s\n", abbreviate(resp.Raw))
			return resp, nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return resp, fmt.Errorf("timed out, result of last query was: %w", resp.Err)
		}
		time.Sleep(healthPollInterval)
	}
}
