package pmocds

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"gargoton.petite-maison-orange.fr/eric/pmoserv/didl"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmolog"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmorender"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/pmostore"
	"gargoton.petite-maison-orange.fr/eric/pmoserv/soap"
)

// ServiceURN identifies the ContentDirectory service version we answer
// for.
const ServiceURN = "urn:schemas-upnp-org:service:ContentDirectory:1"

// UPnP / ContentDirectory error codes.
const (
	errInvalidAction = 401
	errInvalidArgs   = 402
	errActionFailed  = 501
	errNoSuchObject  = 701
	errCannotProcess = 720
)

// Service answers ContentDirectory control requests.
type Service struct {
	Store     *pmostore.Store
	Renderers *pmorender.Registry
	URLs      pmostore.URLProvider
}

// ServeMux wires the control endpoint.
func (s *Service) ServeMux(mux *http.ServeMux) {
	mux.HandleFunc("/upnp/control/ContentDirectory1", s.handleControl)
}

func (s *Service) handleControl(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "cannot read body", http.StatusBadRequest)
		return
	}

	action, err := soap.ParseAction(body)
	if err != nil {
		log.Warnf("❌ broken SOAP request: %v", err)
		s.fault(w, errInvalidArgs, "cannot parse request")
		return
	}
	log.Debugf("📡 SOAP action %s from %q", action.Name, r.UserAgent())

	switch action.Name {
	case "Browse":
		s.browse(w, r, action)
	case "Search":
		s.search(w, r, action)
	case "GetSystemUpdateID":
		s.respond(w, action.Name, []soap.Arg{
			{Name: "Id", Value: strconv.FormatUint(uint64(s.Store.SystemUpdateID()), 10)},
		})
	case "GetSearchCapabilities":
		s.respond(w, action.Name, []soap.Arg{{Name: "SearchCaps", Value: "dc:title"}})
	case "GetSortCapabilities":
		s.respond(w, action.Name, []soap.Arg{{Name: "SortCaps", Value: ""}})
	default:
		s.fault(w, errInvalidAction, fmt.Sprintf("action %s is not implemented", action.Name))
	}
}

func (s *Service) browse(w http.ResponseWriter, r *http.Request, action *soap.Action) {
	objectID := action.Args["ObjectID"]
	flag := action.Args["BrowseFlag"]
	start := parseUint(action.Args["StartingIndex"])
	count := parseUint(action.Args["RequestedCount"])

	resource, ok := s.Store.Get(objectID)
	if !ok {
		s.fault(w, errNoSuchObject, fmt.Sprintf("no object %q", objectID))
		return
	}

	mapper := s.mapperFor(r)

	var listed []pmostore.Resource
	total := 0
	switch flag {
	case "BrowseMetadata":
		listed = []pmostore.Resource{resource}
		total = 1
	case "BrowseDirectChildren":
		container, ok := resource.(*pmostore.Container)
		if !ok {
			// Items have no children; an empty page is the answer.
			break
		}
		children := container.Children()
		total = len(children)
		listed = page(children, start, count)
	default:
		s.fault(w, errInvalidArgs, fmt.Sprintf("unknown BrowseFlag %q", flag))
		return
	}

	s.sendResult(w, action.Name, mapper.MapResources(listed), total)
}

func (s *Service) search(w http.ResponseWriter, r *http.Request, action *soap.Action) {
	term := extractSearchTerm(action.Args["SearchCriteria"])
	start := parseUint(action.Args["StartingIndex"])
	count := parseUint(action.Args["RequestedCount"])

	matches := s.Store.Search(term)
	total := len(matches)
	listed := page(matches, start, count)

	s.sendResult(w, action.Name, s.mapperFor(r).MapResources(listed), total)
}

func (s *Service) sendResult(w http.ResponseWriter, actionName string, doc *didl.Document, total int) {
	result, err := didl.Generate(doc)
	if err != nil {
		log.Errorf("❌ cannot generate DIDL-Lite: %v", err)
		s.fault(w, errCannotProcess, "cannot generate result")
		return
	}
	log.Tracef("DIDL result:\n%s", pmolog.PrettyPrintXML(result))

	s.respond(w, actionName, []soap.Arg{
		{Name: "Result", Value: result},
		{Name: "NumberReturned", Value: strconv.Itoa(len(doc.Objects))},
		{Name: "TotalMatches", Value: strconv.Itoa(total)},
		{Name: "UpdateID", Value: strconv.FormatUint(uint64(s.Store.SystemUpdateID()), 10)},
	})
}

func (s *Service) mapperFor(r *http.Request) *pmostore.Mapper {
	var renderer *pmorender.Profile
	if s.Renderers != nil {
		renderer = s.Renderers.Match(r.UserAgent())
	}
	return &pmostore.Mapper{Renderer: renderer, URLs: s.URLs}
}

func (s *Service) respond(w http.ResponseWriter, actionName string, args []soap.Arg) {
	data, err := soap.BuildResponse(ServiceURN, actionName, args)
	if err != nil {
		log.Errorf("❌ cannot build SOAP response: %v", err)
		s.fault(w, errActionFailed, "internal error")
		return
	}
	w.Header().Set("Content-Type", `text/xml; charset="utf-8"`)
	w.Write(data)
}

func (s *Service) fault(w http.ResponseWriter, code int, description string) {
	data, err := soap.BuildFault(code, description)
	if err != nil {
		http.Error(w, description, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", `text/xml; charset="utf-8"`)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(data)
}

// extractSearchTerm pulls the quoted operand out of a search criteria
// string. Full criteria parsing is not attempted: every renderer seen in
// practice sends a single contains clause.
func extractSearchTerm(criteria string) string {
	if criteria == "" || criteria == "*" {
		return ""
	}
	if i := strings.IndexByte(criteria, '"'); i >= 0 {
		rest := criteria[i+1:]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			return rest[:j]
		}
	}
	return criteria
}

func parseUint(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func page(list []pmostore.Resource, start, count int) []pmostore.Resource {
	if start >= len(list) {
		return nil
	}
	list = list[start:]
	if count > 0 && count < len(list) {
		list = list[:count]
	}
	return list
}
