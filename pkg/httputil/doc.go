// Package httputil provides HTTP helpers for the weave session server.
//
// # Responses
//
// [WriteJSON] encodes a value with a status code. [WriteError] maps coded
// errors from pkg/errors to HTTP statuses and writes an [ErrorBody]:
//
//	if err != nil {
//	    httputil.WriteError(w, err)
//	    return
//	}
//	httputil.WriteJSON(w, http.StatusOK, info)
//
// # Middleware
//
// [Instrument] reports every request to the registered
// observability.ServerHooks and logs it at debug level. Routes are reported
// by their chi pattern ("/sessions/{id}/frame.svg") rather than the raw
// path, so hooks see a bounded set of names.
//
// # Query parameters
//
// [QueryFloat] and [QueryUint] parse optional numeric parameters and return
// INVALID_INPUT errors that [WriteError] turns into 400 responses.
package httputil
