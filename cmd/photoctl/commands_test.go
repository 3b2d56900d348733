// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamPayload = `[
  {"id":1,"name":"Asha Rao","location":"Pune","price":12000,"rating":4.6,"styles":["Candid","Outdoor"],"tags":["Wedding"],"profilePic":"/a.jpg"},
  {"id":2,"name":"Vikram Sethi","location":"Mumbai","price":8000,"rating":4.2,"styles":["Studio"],"tags":["Portrait"]},
  {"id":3,"name":"Meera Iyer","location":"Pune","price":20000,"rating":4.9,"styles":["Candid","Studio"],"tags":["Newborn"]}
]`

func newUpstream(t *testing.T, status int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(upstreamPayload))
	}))
	t.Cleanup(server.Close)
	return server
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

/*
TestSearch_JSON applies filters and sort before printing.
*/
func TestSearch_JSON(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK)

	out, err := run(t, "search", "--source", upstream.URL, "--json", "--style", "Candid", "--sort", "priceLowHigh")
	require.NoError(t, err)

	var body struct {
		Data []struct {
			ID int `json:"id"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, 1, body.Data[0].ID)
	assert.Equal(t, 3, body.Data[1].ID)
	assert.Equal(t, 2, body.Meta.Total)
}

/*
TestSearch_Table renders a table with a window summary.
*/
func TestSearch_Table(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK)

	out, err := run(t, "search", "--source", upstream.URL, "--limit", "2", "--sort", "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "Meera Iyer")
	assert.Contains(t, out, "Vikram Sethi")
	assert.NotContains(t, out, "Asha Rao")
	assert.Contains(t, out, "Showing 2 of 3 photographers")

	out, err = run(t, "search", "--source", upstream.URL, "--city", "Nowhere")
	require.NoError(t, err)
	assert.Contains(t, out, "No photographers match")
}

/*
TestSearch_Errors surfaces validation and upstream failures.
*/
func TestSearch_Errors(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK)

	_, err := run(t, "search", "--source", upstream.URL, "--sort", "alphabetic")
	assert.Error(t, err)

	_, err = run(t, "search", "--source", upstream.URL, "--max-price", "NaN")
	assert.Error(t, err)

	broken := newUpstream(t, http.StatusInternalServerError)
	_, err = run(t, "search", "--source", broken.URL)
	require.Error(t, err)
	assert.Equal(t, "Failed to load photographers", err.Error())
}

/*
TestCities lists distinct cities in first-seen order.
*/
func TestCities(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK)

	out, err := run(t, "cities", "--source", upstream.URL)
	require.NoError(t, err)
	assert.Equal(t, "Pune\nMumbai\n", out)
}
