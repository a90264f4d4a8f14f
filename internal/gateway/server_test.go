package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/LJTian/NewsRadar/internal/ledger"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	store   ledger.Store
	analyze *httptest.Server
	// classifier 收到的每次请求体
	forwarded []map[string]map[string]ArticleFields
}

func newTestEnv(t *testing.T, maxHistory int, classifierStatus int) *testEnv {
	t.Helper()

	env := &testEnv{}
	env.analyze = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]map[string]ArticleFields
		_ = json.NewDecoder(r.Body).Decode(&body)
		env.forwarded = append(env.forwarded, body)
		w.WriteHeader(classifierStatus)
	}))
	t.Cleanup(env.analyze.Close)

	env.store = ledger.NewFileStore(filepath.Join(t.TempDir(), "history.json"))
	server := NewServer(env.store, maxHistory, NewClassifierClient(env.analyze.URL))

	env.router = gin.New()
	server.RegisterRoutes(env.router)
	return env
}

func (e *testEnv) postInput(body, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/input", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp.Message
}

const validBatch = `<news>
  <article><title>A</title><text>hello</text><date>2024-01-01</date><url>http://x</url></article>
</news>`

func TestInputRejectsWrongContentType(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusOK)
	w := env.postInput(validBatch, "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); msg != "Invalid content type" {
		t.Fatalf("message = %q", msg)
	}
}

func TestInputRejectsEmptyBody(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusOK)
	w := env.postInput("", "application/xml")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); msg != "No data received" {
		t.Fatalf("message = %q", msg)
	}
}

// 根元素不是 news：在检查任何文章之前整个请求被拒绝
func TestInputRejectsMalformedEnvelope(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusOK)
	w := env.postInput(`<wrong><article><title>A</title></article></wrong>`, "application/xml")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if msg := message(t, w); msg != "Invalid XML format" {
		t.Fatalf("message = %q", msg)
	}

	titles, _ := env.store.Load(context.Background())
	if len(titles) != 0 {
		t.Fatalf("no article should be admitted, ledger = %v", titles)
	}
	if len(env.forwarded) != 0 {
		t.Fatalf("nothing should reach the classifier")
	}
}

func TestAdmissionValidatesAndDeduplicates(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusOK)

	batch := `<news>
  <article><title>A</title><text>hello</text><date>2024-01-01</date><url>http://x</url></article>
  <article><title></title><text>no title</text><date>2024-01-01</date></article>
  <article><title>NoText</title><text></text><date>2024-01-01</date></article>
  <article><title>NoDate</title><text>t</text><date></date></article>
  <article><title>A</title><text>duplicate in same batch</text><date>2024-01-02</date></article>
  <article><title>B</title><body>from body tag</body><date>2024-01-03</date></article>
</news>`

	w := env.postInput(batch, "application/xml")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if msg := message(t, w); msg != "Articles accepted" {
		t.Fatalf("message = %q", msg)
	}

	titles, _ := env.store.Load(context.Background())
	if len(titles) != 2 {
		t.Fatalf("ledger = %v, want [A B]", titles)
	}

	if len(env.forwarded) != 1 {
		t.Fatalf("classifier calls = %d, want 1", len(env.forwarded))
	}
	articles := env.forwarded[0]["articles"]
	if len(articles) != 2 {
		t.Fatalf("forwarded %d articles, want 2", len(articles))
	}
	// text 为空时回退 body 标签，url 缺省为 N/A
	if articles["B"].Text != "from body tag" {
		t.Fatalf("B text = %q", articles["B"].Text)
	}
	if articles["B"].URL != "N/A" {
		t.Fatalf("B url = %q, want N/A", articles["B"].URL)
	}
}

// 原样重提同一批次：零新收录，账本不变，也不再调用 classifier
func TestResubmissionIsIdempotent(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusOK)

	if w := env.postInput(validBatch, "application/xml"); message(t, w) != "Articles accepted" {
		t.Fatalf("first submission should be accepted")
	}
	w := env.postInput(validBatch, "application/xml")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := message(t, w); msg != "Waiting for new news" {
		t.Fatalf("message = %q, want Waiting for new news", msg)
	}

	titles, _ := env.store.Load(context.Background())
	if len(titles) != 1 {
		t.Fatalf("ledger should be unchanged, got %v", titles)
	}
	if len(env.forwarded) != 1 {
		t.Fatalf("classifier calls = %d, want 1", len(env.forwarded))
	}
}

// 账本超限后下一次准入观察到空账本，之前的标题可以重新收录
func TestRotationAllowsReadmission(t *testing.T) {
	env := newTestEnv(t, 2, http.StatusOK)

	batch := `<news>
  <article><title>A</title><text>a</text><date>d</date></article>
  <article><title>B</title><text>b</text><date>d</date></article>
  <article><title>C</title><text>c</text><date>d</date></article>
</news>`
	env.postInput(batch, "application/xml")

	titles, _ := env.store.Load(context.Background())
	if len(titles) != 3 {
		t.Fatalf("ledger = %v, want 3 titles", titles)
	}

	// 3 > 2，下一次准入先轮转清空，再收录 A
	w := env.postInput(validBatch, "application/xml")
	if msg := message(t, w); msg != "Articles accepted" {
		t.Fatalf("A should be re-admittable after rotation, got %q", msg)
	}
	titles, _ = env.store.Load(context.Background())
	if len(titles) != 1 || titles[0] != "A" {
		t.Fatalf("ledger after rotation = %v, want [A]", titles)
	}
}

// 分类服务不可达：转发失败只记日志，准入结果与响应不受影响
func TestClassifierOutageDoesNotRollBackAdmission(t *testing.T) {
	env := newTestEnv(t, 1000, http.StatusInternalServerError)

	w := env.postInput(validBatch, "application/xml")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if msg := message(t, w); msg != "Articles accepted" {
		t.Fatalf("message = %q", msg)
	}

	titles, _ := env.store.Load(context.Background())
	if len(titles) != 1 || titles[0] != "A" {
		t.Fatalf("admission should stand, ledger = %v", titles)
	}
}
