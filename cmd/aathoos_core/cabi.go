package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"
)

// Go-typed shims over the exported C functions. Test files cannot use cgo,
// so main_test.go drives the C heap through these.

func withCText(s *string, fn func(*C.char)) {
	if s == nil {
		fn(nil)
		return
	}
	cs := C.CString(*s)
	defer C.free(unsafe.Pointer(cs))
	fn(cs)
}

func callDBOpen(path string) uintptr {
	var h C.uintptr_t
	withCText(&path, func(p *C.char) { h = aathoos_db_open(p) })
	return uintptr(h)
}

func callDBClose(db uintptr) {
	aathoos_db_close(C.uintptr_t(db))
}

// callTaskCreate creates a task through the C entry point, copies the
// payload back into Go memory and releases it.
func callTaskCreate(db uintptr, title *string) (text string, ok bool) {
	var ptr *C.char
	withCText(title, func(t *C.char) {
		ptr = aathoos_task_create(C.uintptr_t(db), t, nil, 0, 1)
	})
	if ptr == nil {
		return "", false
	}
	text = C.GoString(ptr)
	aathoos_free_string(ptr)
	return text, true
}

// payloadRoundTrip hands payload out through cPayload and releases it
// once. isNull reports a NULL return.
func payloadRoundTrip(payload string, ok bool) (text string, isNull bool, freed bool) {
	ptr := cPayload(payload, ok)
	if ptr == nil {
		return "", true, false
	}
	text = C.GoString(ptr)
	return text, false, releasePayload(ptr)
}

// freeTwice releases the same payload pointer twice. Only the first
// release may free it.
func freeTwice(payload string) (text string, first, second bool) {
	ptr := cPayload(payload, true)
	text = C.GoString(ptr)
	first = releasePayload(ptr)
	second = releasePayload(ptr)
	return text, first, second
}

func freeNull() bool {
	aathoos_free_string(nil)
	return releasePayload(nil)
}

// freeForeign releases a buffer the library never handed out. The ledger
// must refuse it; the buffer is freed here instead.
func freeForeign(s string) bool {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return releasePayload(cs)
}

func lastError() int32 {
	return int32(aathoos_last_error())
}

func shutdown() {
	aathoos_shutdown()
}
