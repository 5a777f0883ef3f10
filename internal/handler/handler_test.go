package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/auth"
	"github.com/milan-codes/studician-api/internal/config"
	"github.com/milan-codes/studician-api/internal/handler"
	"github.com/milan-codes/studician-api/internal/repository"
	"github.com/milan-codes/studician-api/internal/response"
	"github.com/milan-codes/studician-api/internal/router"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/store"
	"github.com/milan-codes/studician-api/internal/validator"
)

// fakeStore emulates the document store's REST dialect on an in-memory
// tree: GET/PUT/PATCH/DELETE on {path}.json, null for absent paths.
type fakeStore struct {
	mu   sync.Mutex
	root map[string]interface{}

	// failMethod/failPrefix make matching requests return 500.
	failMethod string
	failPrefix string
}

func newFakeStore() *fakeStore {
	return &fakeStore{root: make(map[string]interface{})}
}

// failOn makes every subsequent request with the given method and path
// prefix fail with a 500.
func (f *fakeStore) failOn(method, prefix string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failMethod = method
	f.failPrefix = prefix
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(strings.Trim(r.URL.Path, "/"), ".json")
	parts := strings.Split(path, "/")

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failMethod == r.Method && strings.HasPrefix(path, f.failPrefix) {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
		return
	}

	switch r.Method {
	case http.MethodGet:
		node := f.get(parts)
		if node == nil {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode(node)
	case http.MethodPut:
		var v interface{}
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		f.set(parts, v)
		_ = json.NewEncoder(w).Encode(v)
	case http.MethodPatch:
		var partial map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		node, _ := f.get(parts).(map[string]interface{})
		if node == nil {
			node = make(map[string]interface{})
		}
		for k, v := range partial {
			node[k] = v
		}
		f.set(parts, node)
		_ = json.NewEncoder(w).Encode(node)
	case http.MethodDelete:
		f.delete(parts)
		_, _ = w.Write([]byte("null"))
	default:
		http.Error(w, "unsupported", http.StatusMethodNotAllowed)
	}
}

func (f *fakeStore) get(parts []string) interface{} {
	var node interface{} = f.root
	for _, p := range parts {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil
		}
		node, ok = m[p]
		if !ok {
			return nil
		}
	}
	return node
}

func (f *fakeStore) set(parts []string, v interface{}) {
	node := f.root
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			node[p] = child
		}
		node = child
	}
	node[parts[len(parts)-1]] = v
}

func (f *fakeStore) delete(parts []string) {
	node := f.root
	for _, p := range parts[:len(parts)-1] {
		child, ok := node[p].(map[string]interface{})
		if !ok {
			return
		}
		node = child
	}
	delete(node, parts[len(parts)-1])
}

// staticVerifier maps known tokens to principal ids.
type staticVerifier map[string]string

func (v staticVerifier) Verify(_ context.Context, token string) (string, error) {
	if uid, ok := v[token]; ok {
		return uid, nil
	}
	return "", auth.ErrInvalidToken
}

var setupOnce sync.Once

const (
	aliceToken = "alice-token"
	alice      = "alice"
	bobToken   = "bob-token"
	bob        = "bob"
)

func newTestAPI(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validator.Setup()
	})

	fs := newFakeStore()
	storeSrv := httptest.NewServer(fs)
	t.Cleanup(storeSrv.Close)

	log := zerolog.Nop()
	st := store.New(storeSrv.URL, "", 5*time.Second, log)

	subjectRepo := repository.NewSubjectRepository(st)
	lessonRepo := repository.NewLessonRepository(st)
	taskRepo := repository.NewTaskRepository(st)
	examRepo := repository.NewExamRepository(st)

	handlers := &router.Handlers{
		Subject: handler.NewSubjectHandler(service.NewSubjectService(subjectRepo, lessonRepo, taskRepo, examRepo, log)),
		Lesson:  handler.NewLessonHandler(service.NewLessonService(lessonRepo, subjectRepo, log)),
		Task:    handler.NewTaskHandler(service.NewTaskService(taskRepo, subjectRepo, log)),
		Exam:    handler.NewExamHandler(service.NewExamService(examRepo, subjectRepo, log)),
	}

	verifier := staticVerifier{aliceToken: alice, bobToken: bob}
	cfg := &config.Config{GinMode: gin.TestMode}
	return router.SetupRouter(verifier, handlers, cfg), fs
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    response.ErrCode `json:"code"`
		Message string           `json:"msg"`
	} `json:"error"`
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope (%d %s %s): %v: %s", w.Code, method, path, err, w.Body.String())
		}
	}
	return w, env
}

func dataMap(t *testing.T, env envelope) map[string]json.RawMessage {
	t.Helper()
	m := make(map[string]json.RawMessage)
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("decode data: %v: %s", err, env.Data)
	}
	return m
}

func createSubject(t *testing.T, r *gin.Engine, body string) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/subjects/"+alice, aliceToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create subject: %d: %s", w.Code, w.Body.String())
	}
	var sub struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &sub); err != nil || sub.ID == "" {
		t.Fatalf("created subject has no id: %s", env.Data)
	}
	return sub.ID
}

func TestSubjectLifecycle(t *testing.T) {
	r, _ := newTestAPI(t)

	id := createSubject(t, r, `{"name":"Math","teacher":"Smith","colorCode":5}`)

	// Round trip: the stored record equals the created one.
	w, env := do(t, r, http.MethodGet, "/subjects/"+alice+"/"+id, aliceToken, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get subject: %d", w.Code)
	}
	var got struct {
		Name      string `json:"name"`
		Teacher   string `json:"teacher"`
		ColorCode int    `json:"colorCode"`
		ID        string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	if got.Name != "Math" || got.Teacher != "Smith" || got.ColorCode != 5 || got.ID != id {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// The collection lists it.
	_, env = do(t, r, http.MethodGet, "/subjects/"+alice, aliceToken, "")
	if _, ok := dataMap(t, env)[id]; !ok {
		t.Fatalf("collection missing %s: %s", id, env.Data)
	}

	// Replace keeps the id.
	w, _ = do(t, r, http.MethodPut, "/subjects/"+alice+"/"+id, aliceToken, `{"name":"Maths","teacher":"Smith","colorCode":6}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update subject: %d: %s", w.Code, w.Body.String())
	}
	_, env = do(t, r, http.MethodGet, "/subjects/"+alice+"/"+id, aliceToken, "")
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode subject: %v", err)
	}
	if got.Name != "Maths" || got.ColorCode != 6 || got.ID != id {
		t.Fatalf("update not applied: %+v", got)
	}

	// Delete, then read back an empty object.
	w, _ = do(t, r, http.MethodDelete, "/subjects/"+alice+"/"+id, aliceToken, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete subject: %d", w.Code)
	}
	_, env = do(t, r, http.MethodGet, "/subjects/"+alice+"/"+id, aliceToken, "")
	if string(env.Data) != "{}" {
		t.Fatalf("deleted subject still readable: %s", env.Data)
	}
}

func TestListReturnsEmptyObjectNot404(t *testing.T) {
	r, _ := newTestAPI(t)

	for _, path := range []string{"/subjects/" + alice, "/lessons/" + alice, "/tasks/" + alice, "/exams/" + alice, "/lessons/" + alice + "/nosuch"} {
		w, env := do(t, r, http.MethodGet, path, aliceToken, "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if string(env.Data) != "{}" {
			t.Fatalf("%s: expected empty object, got %s", path, env.Data)
		}
	}
}

func TestCreateMissingParametersWritesNothing(t *testing.T) {
	r, fs := newTestAPI(t)

	w, env := do(t, r, http.MethodPost, "/subjects/"+alice, aliceToken, `{"name":"Math"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Error == nil || env.Error.Code != response.ErrMissingParameters {
		t.Fatalf("expected MISSING_PARAMETERS: %s", w.Body.String())
	}
	if env.Error.Message != "Missing parameters." {
		t.Fatalf("unexpected message: %q", env.Error.Message)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.root) != 0 {
		t.Fatalf("store touched by rejected create: %v", fs.root)
	}
}

func TestCreateInvalidParameterTypes(t *testing.T) {
	r, fs := newTestAPI(t)

	cases := []struct {
		path string
		body string
	}{
		{"/lessons/" + alice, `{"subjectId":"s1","week":"A","day":8,"starts":"08:00","ends":"09:00","location":"Room1"}`},
		{"/lessons/" + alice, `{"subjectId":"s1","week":"C","day":1,"starts":"08:00","ends":"09:00","location":"Room1"}`},
		{"/tasks/" + alice, `{"name":"HW","type":3,"subjectId":"s1","dueDate":1700000000}`},
	}

	for _, tc := range cases {
		w, env := do(t, r, http.MethodPost, tc.path, aliceToken, tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", tc.body, w.Code, w.Body.String())
		}
		if env.Error == nil || env.Error.Message != "Invalid parameter types." {
			t.Fatalf("%s: expected invalid-types message: %s", tc.body, w.Body.String())
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.root) != 0 {
		t.Fatalf("store touched by rejected create: %v", fs.root)
	}
}

func TestAuthorizationGuardsEveryRoute(t *testing.T) {
	r, fs := newTestAPI(t)

	// No token.
	w, _ := do(t, r, http.MethodGet, "/subjects/"+alice, "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	// Bob's token on Alice's path.
	w, env := do(t, r, http.MethodPost, "/subjects/"+alice, bobToken, `{"name":"Math","teacher":"Smith","colorCode":5}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if env.Error == nil || env.Error.Message != "Tried to reach another user's data, access denied." {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if len(fs.root) != 0 {
		t.Fatalf("store touched by denied request: %v", fs.root)
	}
}

func TestDependentCreationRequiresParent(t *testing.T) {
	r, fs := newTestAPI(t)

	w, env := do(t, r, http.MethodPost, "/tasks/"+alice, aliceToken,
		`{"name":"HW","type":1,"subjectId":"nonexistent","dueDate":1700000000}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Message != "Subject does not exist." {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	fs.mu.Lock()
	_, tasksWritten := fs.root["tasks"]
	fs.mu.Unlock()
	if tasksWritten {
		t.Fatal("task written despite missing parent")
	}
}

func TestCascadeDeleteRemovesDependents(t *testing.T) {
	r, _ := newTestAPI(t)

	subjectID := createSubject(t, r, `{"name":"Math","teacher":"Smith","colorCode":5}`)

	// One dependent of each kind.
	w, env := do(t, r, http.MethodPost, "/lessons/"+alice, aliceToken,
		`{"subjectId":"`+subjectID+`","week":"A","day":1,"starts":"08:00","ends":"09:00","location":"Room1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create lesson: %d: %s", w.Code, w.Body.String())
	}
	var lesson struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(env.Data, &lesson)

	w, _ = do(t, r, http.MethodPost, "/tasks/"+alice, aliceToken,
		`{"name":"HW","type":1,"subjectId":"`+subjectID+`","dueDate":1700000000}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create task: %d: %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodPost, "/exams/"+alice, aliceToken,
		`{"name":"Final","subjectId":"`+subjectID+`","dueDate":1700000000}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create exam: %d: %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodDelete, "/subjects/"+alice+"/"+subjectID, aliceToken, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("cascade delete: %d", w.Code)
	}

	// Every dependent subtree reads back empty.
	for _, path := range []string{
		"/subjects/" + alice + "/" + subjectID,
		"/lessons/" + alice + "/" + subjectID,
		"/tasks/" + alice + "/" + subjectID,
		"/exams/" + alice + "/" + subjectID,
		"/lessons/" + alice + "/" + subjectID + "/" + lesson.ID,
	} {
		w, env := do(t, r, http.MethodGet, path, aliceToken, "")
		if w.Code != http.StatusOK || string(env.Data) != "{}" {
			t.Fatalf("%s: expected empty object after cascade, got %d %s", path, w.Code, env.Data)
		}
	}
}

func TestUpdateMissingTargetIs404(t *testing.T) {
	r, _ := newTestAPI(t)

	subjectID := createSubject(t, r, `{"name":"Math","teacher":"Smith","colorCode":5}`)

	w, _ := do(t, r, http.MethodPut, "/lessons/"+alice+"/"+subjectID+"/no-such-lesson", aliceToken,
		`{"subjectId":"`+subjectID+`","week":"B","day":2,"starts":"10:00","ends":"11:00","location":"Room2"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodPut, "/subjects/"+alice+"/no-such-subject", aliceToken,
		`{"name":"Math","teacher":"Smith","colorCode":5}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for subject, got %d", w.Code)
	}
}

func TestDependentLifecycle(t *testing.T) {
	r, _ := newTestAPI(t)

	subjectID := createSubject(t, r, `{"name":"History","teacher":"Jones","colorCode":3}`)

	w, env := do(t, r, http.MethodPost, "/exams/"+alice, aliceToken,
		`{"name":"Midterm","subjectId":"`+subjectID+`","dueDate":1700000000,"description":"chapters 1-4"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create exam: %d: %s", w.Code, w.Body.String())
	}
	var exam struct {
		ID          string  `json:"id"`
		Description *string `json:"description"`
		Reminder    *int64  `json:"reminder"`
	}
	if err := json.Unmarshal(env.Data, &exam); err != nil || exam.ID == "" {
		t.Fatalf("created exam has no id: %s", env.Data)
	}
	if exam.Description == nil || *exam.Description != "chapters 1-4" {
		t.Fatalf("description lost: %s", env.Data)
	}
	if exam.Reminder != nil {
		t.Fatalf("absent reminder must stay null: %s", env.Data)
	}

	// Replace, preserving identity.
	w, _ = do(t, r, http.MethodPut, "/exams/"+alice+"/"+subjectID+"/"+exam.ID, aliceToken,
		`{"name":"Midterm (moved)","subjectId":"`+subjectID+`","dueDate":1700600000}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("update exam: %d: %s", w.Code, w.Body.String())
	}

	_, env = do(t, r, http.MethodGet, "/exams/"+alice+"/"+subjectID+"/"+exam.ID, aliceToken, "")
	var got struct {
		Name    string `json:"name"`
		DueDate int64  `json:"dueDate"`
		ID      string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode exam: %v", err)
	}
	if got.Name != "Midterm (moved)" || got.DueDate != 1700600000 || got.ID != exam.ID {
		t.Fatalf("replace mismatch: %+v", got)
	}

	// Delete then read back empty.
	w, _ = do(t, r, http.MethodDelete, "/exams/"+alice+"/"+subjectID+"/"+exam.ID, aliceToken, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete exam: %d", w.Code)
	}
	_, env = do(t, r, http.MethodGet, "/exams/"+alice+"/"+subjectID+"/"+exam.ID, aliceToken, "")
	if string(env.Data) != "{}" {
		t.Fatalf("deleted exam still readable: %s", env.Data)
	}
}

func TestListGroupsDependentsBySubject(t *testing.T) {
	r, _ := newTestAPI(t)

	s1 := createSubject(t, r, `{"name":"Math","teacher":"Smith","colorCode":5}`)
	s2 := createSubject(t, r, `{"name":"History","teacher":"Jones","colorCode":3}`)

	for _, sid := range []string{s1, s2} {
		w, _ := do(t, r, http.MethodPost, "/lessons/"+alice, aliceToken,
			`{"subjectId":"`+sid+`","week":"B","day":3,"starts":"09:00","ends":"10:00","location":"Lab"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("create lesson under %s: %d", sid, w.Code)
		}
	}

	_, env := do(t, r, http.MethodGet, "/lessons/"+alice, aliceToken, "")
	grouped := dataMap(t, env)
	if len(grouped) != 2 {
		t.Fatalf("expected lessons under 2 subjects, got %d: %s", len(grouped), env.Data)
	}
	for _, sid := range []string{s1, s2} {
		if _, ok := grouped[sid]; !ok {
			t.Fatalf("missing subject group %s: %s", sid, env.Data)
		}
	}
}

func TestStoreReadFailureIs500(t *testing.T) {
	r, fs := newTestAPI(t)

	fs.failOn(http.MethodGet, "subjects/")

	w, env := do(t, r, http.MethodGet, "/subjects/"+alice, aliceToken, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != response.ErrStoreRead {
		t.Fatalf("expected STORE_READ_FAILED: %s", w.Body.String())
	}
}

func TestStoreWriteFailureIs500(t *testing.T) {
	r, fs := newTestAPI(t)

	fs.failOn(http.MethodPut, "subjects/")

	w, env := do(t, r, http.MethodPost, "/subjects/"+alice, aliceToken,
		`{"name":"Math","teacher":"Smith","colorCode":5}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != response.ErrStoreWrite {
		t.Fatalf("expected STORE_WRITE_FAILED: %s", w.Body.String())
	}
}

func TestCascadePartialFailureLeavesParent(t *testing.T) {
	r, fs := newTestAPI(t)

	subjectID := createSubject(t, r, `{"name":"Math","teacher":"Smith","colorCode":5}`)

	for _, c := range []struct{ path, body string }{
		{"/lessons/" + alice, `{"subjectId":"` + subjectID + `","week":"A","day":1,"starts":"08:00","ends":"09:00","location":"Room1"}`},
		{"/tasks/" + alice, `{"name":"HW","type":1,"subjectId":"` + subjectID + `","dueDate":1700000000}`},
		{"/exams/" + alice, `{"name":"Final","subjectId":"` + subjectID + `","dueDate":1700000000}`},
	} {
		if w, _ := do(t, r, http.MethodPost, c.path, aliceToken, c.body); w.Code != http.StatusCreated {
			t.Fatalf("seed %s: %d", c.path, w.Code)
		}
	}

	// The cascade deletes lessons first, so a failing task delete must
	// abort before exams and the subject itself are touched.
	fs.failOn(http.MethodDelete, "tasks/")

	w, env := do(t, r, http.MethodDelete, "/subjects/"+alice+"/"+subjectID, aliceToken, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if env.Error == nil || env.Error.Code != response.ErrStoreWrite {
		t.Fatalf("expected STORE_WRITE_FAILED: %s", w.Body.String())
	}

	// The parent and the not-yet-reached dependents survive.
	for _, path := range []string{
		"/subjects/" + alice + "/" + subjectID,
		"/exams/" + alice + "/" + subjectID,
		"/tasks/" + alice + "/" + subjectID,
	} {
		_, env := do(t, r, http.MethodGet, path, aliceToken, "")
		if string(env.Data) == "{}" {
			t.Fatalf("%s: removed despite aborted cascade", path)
		}
	}

	// The step that ran before the failure already committed.
	_, env = do(t, r, http.MethodGet, "/lessons/"+alice+"/"+subjectID, aliceToken, "")
	if string(env.Data) != "{}" {
		t.Fatalf("lessons survived a cascade that reached them: %s", env.Data)
	}
}
