// Command aathoos_core builds the C library used by the native shells:
//
//	go build -buildmode=c-archive -o libaathoos_core.a ./cmd/aathoos_core   (macOS)
//	go build -buildmode=c-shared  -o aathoos_core.dll  ./cmd/aathoos_core   (Windows)
//
// aathoos_core.h in this directory is the stable public header.
package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"aathoos-core/bridge"
)

func main() {}

// goText decodes a nullable C string. NULL becomes nil.
func goText(p *C.char) *string {
	if p == nil {
		return nil
	}
	s := C.GoString(p)
	return &s
}

// cPayload copies a payload to the C heap and records it in the ledger.
// The caller owns the result and must pass it to aathoos_free_string.
func cPayload(payload string, ok bool) *C.char {
	if !ok {
		return nil
	}
	cs := C.CString(payload)
	bridge.Default().Payloads.Track(uintptr(unsafe.Pointer(cs)))
	return cs
}

func handle(db C.uintptr_t) bridge.Handle {
	return bridge.Handle(db)
}

// ── Lifecycle ───────────────────────────────────────────────────────────────

//export aathoos_db_open
func aathoos_db_open(path *C.char) C.uintptr_t {
	return C.uintptr_t(bridge.Default().Open(goText(path)))
}

//export aathoos_db_close
func aathoos_db_close(db C.uintptr_t) {
	bridge.Default().Close(handle(db))
}

//export aathoos_free_string
func aathoos_free_string(ptr *C.char) {
	releasePayload(ptr)
}

// releasePayload frees ptr if the ledger still holds it and reports
// whether it did.
func releasePayload(ptr *C.char) bool {
	if ptr == nil {
		return false
	}
	if !bridge.Default().Payloads.Release(uintptr(unsafe.Pointer(ptr))) {
		return false
	}
	C.free(unsafe.Pointer(ptr))
	return true
}

//export aathoos_shutdown
func aathoos_shutdown() {
	bridge.Default().CloseAll()
}

//export aathoos_last_error
func aathoos_last_error() C.int32_t {
	return C.int32_t(bridge.Default().LastError())
}

// ── Tasks ───────────────────────────────────────────────────────────────────

//export aathoos_task_create
func aathoos_task_create(db C.uintptr_t, title, notes *C.char, dueDate C.int64_t, priority C.int32_t) *C.char {
	return cPayload(bridge.Default().TaskCreate(handle(db), goText(title), goText(notes), int64(dueDate), int32(priority)))
}

//export aathoos_task_get
func aathoos_task_get(db C.uintptr_t, id *C.char) *C.char {
	return cPayload(bridge.Default().TaskGet(handle(db), goText(id)))
}

//export aathoos_task_list_all
func aathoos_task_list_all(db C.uintptr_t) *C.char {
	return cPayload(bridge.Default().TaskListAll(handle(db)))
}

//export aathoos_task_list_incomplete
func aathoos_task_list_incomplete(db C.uintptr_t) *C.char {
	return cPayload(bridge.Default().TaskListIncomplete(handle(db)))
}

//export aathoos_task_set_completed
func aathoos_task_set_completed(db C.uintptr_t, id *C.char, completed C.bool) C.bool {
	return C.bool(bridge.Default().TaskSetCompleted(handle(db), goText(id), bool(completed)))
}

//export aathoos_task_update_title
func aathoos_task_update_title(db C.uintptr_t, id, title *C.char) C.bool {
	return C.bool(bridge.Default().TaskUpdateTitle(handle(db), goText(id), goText(title)))
}

//export aathoos_task_delete
func aathoos_task_delete(db C.uintptr_t, id *C.char) C.bool {
	return C.bool(bridge.Default().TaskDelete(handle(db), goText(id)))
}

// ── Notes ───────────────────────────────────────────────────────────────────

//export aathoos_note_create
func aathoos_note_create(db C.uintptr_t, title, body, subject *C.char) *C.char {
	return cPayload(bridge.Default().NoteCreate(handle(db), goText(title), goText(body), goText(subject)))
}

//export aathoos_note_get
func aathoos_note_get(db C.uintptr_t, id *C.char) *C.char {
	return cPayload(bridge.Default().NoteGet(handle(db), goText(id)))
}

//export aathoos_note_list_all
func aathoos_note_list_all(db C.uintptr_t) *C.char {
	return cPayload(bridge.Default().NoteListAll(handle(db)))
}

//export aathoos_note_list_by_subject
func aathoos_note_list_by_subject(db C.uintptr_t, subject *C.char) *C.char {
	return cPayload(bridge.Default().NoteListBySubject(handle(db), goText(subject)))
}

//export aathoos_note_update_body
func aathoos_note_update_body(db C.uintptr_t, id, body *C.char) C.bool {
	return C.bool(bridge.Default().NoteUpdateBody(handle(db), goText(id), goText(body)))
}

//export aathoos_note_delete
func aathoos_note_delete(db C.uintptr_t, id *C.char) C.bool {
	return C.bool(bridge.Default().NoteDelete(handle(db), goText(id)))
}

// ── Goals ───────────────────────────────────────────────────────────────────

//export aathoos_goal_create
func aathoos_goal_create(db C.uintptr_t, title, description *C.char, targetDate C.int64_t) *C.char {
	return cPayload(bridge.Default().GoalCreate(handle(db), goText(title), goText(description), int64(targetDate)))
}

//export aathoos_goal_get
func aathoos_goal_get(db C.uintptr_t, id *C.char) *C.char {
	return cPayload(bridge.Default().GoalGet(handle(db), goText(id)))
}

//export aathoos_goal_list_all
func aathoos_goal_list_all(db C.uintptr_t) *C.char {
	return cPayload(bridge.Default().GoalListAll(handle(db)))
}

//export aathoos_goal_set_progress
func aathoos_goal_set_progress(db C.uintptr_t, id *C.char, progress C.double) C.bool {
	return C.bool(bridge.Default().GoalSetProgress(handle(db), goText(id), float64(progress)))
}

//export aathoos_goal_delete
func aathoos_goal_delete(db C.uintptr_t, id *C.char) C.bool {
	return C.bool(bridge.Default().GoalDelete(handle(db), goText(id)))
}

// ── Study sessions ──────────────────────────────────────────────────────────

//export aathoos_study_session_create
func aathoos_study_session_create(db C.uintptr_t, subject *C.char, durationSecs C.int64_t, notes *C.char) *C.char {
	return cPayload(bridge.Default().StudySessionCreate(handle(db), goText(subject), int64(durationSecs), goText(notes)))
}

//export aathoos_study_session_get
func aathoos_study_session_get(db C.uintptr_t, id *C.char) *C.char {
	return cPayload(bridge.Default().StudySessionGet(handle(db), goText(id)))
}

//export aathoos_study_session_list_all
func aathoos_study_session_list_all(db C.uintptr_t) *C.char {
	return cPayload(bridge.Default().StudySessionListAll(handle(db)))
}

//export aathoos_study_session_list_by_subject
func aathoos_study_session_list_by_subject(db C.uintptr_t, subject *C.char) *C.char {
	return cPayload(bridge.Default().StudySessionListBySubject(handle(db), goText(subject)))
}

//export aathoos_study_session_total_duration
func aathoos_study_session_total_duration(db C.uintptr_t, subject *C.char) C.int64_t {
	return C.int64_t(bridge.Default().StudySessionTotalDuration(handle(db), goText(subject)))
}

//export aathoos_study_session_delete
func aathoos_study_session_delete(db C.uintptr_t, id *C.char) C.bool {
	return C.bool(bridge.Default().StudySessionDelete(handle(db), goText(id)))
}
