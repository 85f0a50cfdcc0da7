// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"datcloude/internal/cache"
	"datcloude/internal/media"
	"datcloude/internal/models"
)

// getProjects lists every project, newest first.
func (b *Bridge) getProjects(w http.ResponseWriter, r *http.Request) {
	body, gen, ok := b.cached(r, cache.ProjectsKey)
	if ok {
		writeRaw(w, body)
		return
	}

	projects, err := b.cfg.Projects.List(r.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load projects.")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	b.respondCached(w, r, cache.ProjectsKey, gen, projects)
}

// addProject creates a project. Absent fields take the creation defaults.
func (b *Bridge) addProject(w http.ResponseWriter, r *http.Request) {
	var in models.ProjectPatch
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateProject(&in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var p models.Project
	in.Apply(&p)

	created, err := b.cfg.Projects.Create(r.Context(), &p)
	if err != nil {
		slog.Error("create project failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create project.")
		return
	}
	b.invalidate(r, cache.ProjectsKey)

	slog.Info("project created", "id", created.ID, "category", created.Category)
	writeJSON(w, http.StatusOK, map[string]any{"id": created.ID, "success": true})
}

// updateProject applies the supplied fields to the project named by the id
// query parameter. An unknown id is not an error.
func (b *Bridge) updateProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusOK, "Missing Project ID")
		return
	}

	var patch models.ProjectPatch
	if err := decodeBody(r, &patch); err != nil {
		badBody(w, err)
		return
	}
	if msg := validateProject(&patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if !patch.Empty() {
		found, err := b.cfg.Projects.Update(r.Context(), id, &patch)
		if err != nil {
			slog.Error("update project failed", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update project.")
			return
		}
		if !found {
			slog.Debug("update of unknown project", "id", id)
		}
		b.invalidate(r, cache.ProjectsKey)
	}
	writeSuccess(w)
}

// deleteProject removes a project. Deleting an unknown id succeeds.
func (b *Bridge) deleteProject(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	found, err := b.cfg.Projects.Delete(r.Context(), id)
	if err != nil {
		slog.Error("delete project failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete project.")
		return
	}
	if found {
		b.invalidate(r, cache.ProjectsKey)
		slog.Info("project deleted", "id", id)
	}
	writeSuccess(w)
}

// uploadMedia stores an inline data URI in object storage and returns the
// public URL to use as thumbnailUrl or mediaUrl.
func (b *Bridge) uploadMedia(w http.ResponseWriter, r *http.Request) {
	if b.cfg.Media == nil {
		writeError(w, http.StatusServiceUnavailable, "Media storage is not configured.")
		return
	}

	var in struct {
		DataURI string `json:"dataUri"`
	}
	if err := decodeBody(r, &in); err != nil {
		badBody(w, err)
		return
	}

	contentType, data, err := media.ParseDataURI(in.DataURI)
	if err != nil {
		if errors.Is(err, media.ErrNotDataURI) {
			writeError(w, http.StatusBadRequest, "dataUri must be a data: URI.")
			return
		}
		writeError(w, http.StatusBadRequest, "Malformed data URI.")
		return
	}
	if msg := validateUpload(contentType, data); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	url, err := b.cfg.Media.Upload(r.Context(), contentType, data)
	if err != nil {
		slog.Error("media upload failed", "content_type", contentType, "size", len(data), "error", err)
		writeError(w, http.StatusBadGateway, "Upload failed.")
		return
	}

	slog.Info("media uploaded", "url", url, "size", len(data))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "url": url})
}
