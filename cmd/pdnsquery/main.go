package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
)

type lookupRecord struct {
	QType   string `json:"qtype"`
	QName   string `json:"qname"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
}

type lookupResponse struct {
	Result  []lookupRecord `json:"result"`
	Message string         `json:"message,omitempty"`
}

func main() {
	var (
		server  = flag.String("server", "http://127.0.0.1:8080", "Control plane base URL")
		name    = flag.String("name", "example.com", "Query name")
		qtype   = flag.String("qtype", "A", "Query type (A, AAAA, TXT, SOA, ANY, ...)")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
		quiet   = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	resp, err := query(*server, *name, *qtype, *timeout)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "pdnsquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	fmt.Printf("answers=%d\n", len(resp.Result))
	rows := make([]string, 0, len(resp.Result))
	for _, r := range resp.Result {
		rows = append(rows, formatRR(r))
	}
	sort.Strings(rows)
	for _, s := range rows {
		fmt.Println(s)
	}
}

func query(server, name, qtype string, timeout time.Duration) (lookupResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return lookupResponse{}, errors.New("name required")
	}
	qtype = strings.ToUpper(strings.TrimSpace(qtype))
	if _, ok := dns.StringToType[qtype]; !ok {
		return lookupResponse{}, fmt.Errorf("unknown qtype %q", qtype)
	}

	u := strings.TrimRight(server, "/") + "/pdns/lookup/" + url.PathEscape(name) + "/" + qtype

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return lookupResponse{}, err
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return lookupResponse{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return lookupResponse{}, err
	}
	var out lookupResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return lookupResponse{}, fmt.Errorf("status %d: unparseable body: %w", res.StatusCode, err)
	}
	if res.StatusCode != http.StatusOK {
		return out, fmt.Errorf("status %d: %s", res.StatusCode, out.Message)
	}
	return out, nil
}

// formatRR renders r in presentation format. Contents the dns package
// cannot parse, such as ALIAS, are printed verbatim.
func formatRR(r lookupRecord) string {
	line := fmt.Sprintf("%s %d IN %s %s", dns.Fqdn(r.QName), r.TTL, r.QType, quoteTXT(r))
	if rr, err := dns.NewRR(line); err == nil && rr != nil {
		return rr.String()
	}
	return line
}

func quoteTXT(r lookupRecord) string {
	if r.QType == "TXT" && !strings.HasPrefix(r.Content, `"`) {
		return `"` + r.Content + `"`
	}
	return r.Content
}
