package main

import "net/http"

func (app *application) aboutAuthor(w http.ResponseWriter, r *http.Request) {
	response := envelope{
		"title": "About the author",
		"text":  "Pet project: a small blogging platform with groups, comments and subscriptions.",
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) aboutTech(w http.ResponseWriter, r *http.Request) {
	response := envelope{
		"title": "Technologies",
		"text":  "Go, PostgreSQL, Redis.",
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
