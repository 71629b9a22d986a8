package venduretesting

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/MichalMitros/catalog-seeder/internal/graphql"
	"github.com/MichalMitros/catalog-seeder/internal/vendure"
)

const (
	// Username is superadmin username accepted by Server.
	Username = "superadmin"
	// Password is superadmin password accepted by Server.
	Password = "superadmin"
)

var operationNameRegexp = regexp.MustCompile(`^\s*(?:query|mutation)\s+(\w+)`)

// Call is recorded Admin API call.
type Call struct {
	Operation string
	Variables map[string]any
}

// CollectionRecord is collection stored by Server.
type CollectionRecord struct {
	vendure.Collection
	Description string
	Filters     []vendure.ConfigurableOperation
}

// VariantRecord is product variant stored by Server.
type VariantRecord struct {
	vendure.ProductVariant
	ProductID string
	Name      string
}

// ProductRecord is product stored by Server.
type ProductRecord struct {
	vendure.Product
	Description     string
	FacetValueIDs   []string
	CustomFields    map[string]any
	FeaturedAssetID string
	AssetIDs        []string
	Variants        []VariantRecord
}

type failure struct {
	operation string
	match     func(variables map[string]any) bool
	message   string
}

// Server is in-memory fake of Admin API.
type Server struct {
	*httptest.Server

	mu           sync.Mutex
	token        string
	tokens       int
	rotateTokens bool
	ids          int
	calls        []Call
	failures     []failure
	collections  []*CollectionRecord
	facets       []*vendure.Facet
	products     []*ProductRecord
	assets       []vendure.Asset
}

// Option is custom configuration of Server.
type Option func(s *Server)

// WithTokenRotation makes Server issue new session token with every authorized response.
func WithTokenRotation() Option {
	return func(s *Server) {
		s.rotateTokens = true
	}
}

// NewServer starts new Server and closes it after test is finished.
func NewServer(t *testing.T, ops ...Option) *Server {
	t.Helper()

	srv := &Server{}
	for _, op := range ops {
		op(srv)
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(srv.serveHTTP))
	t.Cleanup(srv.Close)

	return srv
}

// Endpoint returns Admin API endpoint URL.
func (s *Server) Endpoint() string {
	return s.URL + "/admin-api"
}

// FailOn makes calls of operation matching provided function fail with GraphQL error.
// Nil match fails all calls of operation.
func (s *Server) FailOn(operation string, match func(variables map[string]any) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failure{
		operation: operation,
		match:     match,
		message:   fmt.Sprintf("%s failed", operation),
	})
}

// Calls returns recorded calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsOf returns recorded calls of operation.
func (s *Server) CallsOf(operation string) []Call {
	var result []Call
	for _, call := range s.Calls() {
		if call.Operation == operation {
			result = append(result, call)
		}
	}
	return result
}

// Collections returns stored collections in creation order.
func (s *Server) Collections() []CollectionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]CollectionRecord, 0, len(s.collections))
	for _, c := range s.collections {
		result = append(result, *c)
	}
	return result
}

// Facets returns stored facets in creation order.
func (s *Server) Facets() []vendure.Facet {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]vendure.Facet, 0, len(s.facets))
	for _, f := range s.facets {
		facet := *f
		facet.Values = append([]vendure.FacetValue(nil), f.Values...)
		result = append(result, facet)
	}
	return result
}

// Products returns stored products in creation order.
func (s *Server) Products() []ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]ProductRecord, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, *p)
	}
	return result
}

// Assets returns stored assets.
func (s *Server) Assets() []vendure.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]vendure.Asset(nil), s.assets...)
}

// SeedCollection stores collection as if it was created earlier and returns its id.
func (s *Server) SeedCollection(name, slug string, parentID *string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &CollectionRecord{Collection: vendure.Collection{
		ID:       s.nextID(),
		Name:     name,
		Slug:     slug,
		ParentID: parentID,
	}}
	s.collections = append(s.collections, record)
	return record.ID
}

// SeedFacet stores facet with values as if it was created earlier.
func (s *Server) SeedFacet(name, code string, values ...vendure.FacetValue) vendure.Facet {
	s.mu.Lock()
	defer s.mu.Unlock()

	facet := &vendure.Facet{ID: s.nextID(), Name: name, Code: code}
	for _, v := range values {
		v.ID = s.nextID()
		facet.Values = append(facet.Values, v)
	}
	s.facets = append(s.facets, facet)
	return *facet
}

// SeedProduct stores product as if it was created earlier.
func (s *Server) SeedProduct(name, slug string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := &ProductRecord{Product: vendure.Product{ID: s.nextID(), Name: name, Slug: slug}}
	s.products = append(s.products, record)
	return record.ID
}

func (s *Server) serveHTTP(wrt http.ResponseWriter, req *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gqlReq, file, err := decodeRequest(req)
	if err != nil {
		writeErrors(wrt, err.Error())
		return
	}

	match := operationNameRegexp.FindStringSubmatch(gqlReq.Query)
	if match == nil {
		writeErrors(wrt, "operation name is required")
		return
	}
	operation := match[1]
	s.calls = append(s.calls, Call{Operation: operation, Variables: gqlReq.Variables})

	if operation != "Login" {
		if s.token == "" || req.Header.Get("Authorization") != "Bearer "+s.token {
			writeErrors(wrt, "You are not currently authorized to perform this action")
			return
		}
		if s.rotateTokens {
			s.token = s.nextToken()
			wrt.Header().Set(graphql.AuthTokenHeader, s.token)
		}
	}

	for _, f := range s.failures {
		if f.operation == operation && (f.match == nil || f.match(gqlReq.Variables)) {
			writeErrors(wrt, f.message)
			return
		}
	}

	data, err := s.handle(wrt, operation, gqlReq.Variables, file)
	if err != nil {
		writeErrors(wrt, err.Error())
		return
	}

	writeData(wrt, data)
}

func (s *Server) handle(
	wrt http.ResponseWriter,
	operation string,
	variables map[string]any,
	file *graphql.File,
) (map[string]any, error) {
	switch operation {
	case "Login":
		return s.login(wrt, variables), nil
	case "Collections":
		return s.listCollections(variables)
	case "CreateCollection":
		return s.createCollection(variables)
	case "UpdateCollection":
		return s.updateCollection(variables)
	case "Facets":
		return s.listFacets(variables)
	case "CreateFacet":
		return s.createFacet(variables)
	case "CreateFacetValues":
		return s.createFacetValues(variables)
	case "Products":
		return s.listProducts(variables)
	case "CreateProduct":
		return s.createProduct(variables)
	case "CreateProductVariants":
		return s.createProductVariants(variables)
	case "UpdateProduct":
		return s.updateProduct(variables)
	case "CreateAssets":
		return s.createAssets(file)
	default:
		return nil, fmt.Errorf("unknown operation %s", operation)
	}
}

func (s *Server) login(wrt http.ResponseWriter, variables map[string]any) map[string]any {
	if variables["username"] != Username || variables["password"] != Password {
		return map[string]any{"login": map[string]any{
			"__typename": "InvalidCredentialsError",
			"errorCode":  "INVALID_CREDENTIALS_ERROR",
			"message":    "The provided credentials are invalid",
		}}
	}

	s.token = s.nextToken()
	wrt.Header().Set(graphql.AuthTokenHeader, s.token)

	return map[string]any{"login": map[string]any{
		"__typename": "CurrentUser",
		"id":         "1",
		"identifier": Username,
	}}
}

func (s *Server) listCollections(variables map[string]any) (map[string]any, error) {
	var opts options
	if err := decodeVariable(variables, "options", &opts); err != nil {
		return nil, err
	}

	items := make([]vendure.Collection, 0, len(s.collections))
	for _, c := range s.collections {
		if opts.Filter.Name.Contains != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(opts.Filter.Name.Contains)) {
			continue
		}
		items = append(items, c.Collection)
	}

	return map[string]any{"collections": page(items, opts)}, nil
}

func (s *Server) createCollection(variables map[string]any) (map[string]any, error) {
	var input vendure.CreateCollectionInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	if len(input.Translations) == 0 {
		return nil, fmt.Errorf("translations are required")
	}

	if input.ParentID != nil && s.findCollection(*input.ParentID) == nil {
		return nil, fmt.Errorf("No Collection with the id \"%s\" could be found", *input.ParentID)
	}

	translation := input.Translations[0]
	record := &CollectionRecord{
		Collection: vendure.Collection{
			ID:       s.nextID(),
			Name:     translation.Name,
			Slug:     s.uniqueCollectionSlug(translation.Slug),
			ParentID: input.ParentID,
		},
		Description: translation.Description,
		Filters:     input.Filters,
	}
	s.collections = append(s.collections, record)

	return map[string]any{"createCollection": record.Collection}, nil
}

func (s *Server) updateCollection(variables map[string]any) (map[string]any, error) {
	var input vendure.UpdateCollectionInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	record := s.findCollection(input.ID)
	if record == nil {
		return nil, fmt.Errorf("No Collection with the id \"%s\" could be found", input.ID)
	}
	record.Filters = input.Filters

	return map[string]any{"updateCollection": record.Collection}, nil
}

func (s *Server) listFacets(variables map[string]any) (map[string]any, error) {
	var opts options
	if err := decodeVariable(variables, "options", &opts); err != nil {
		return nil, err
	}

	items := make([]vendure.Facet, 0, len(s.facets))
	for _, f := range s.facets {
		items = append(items, *f)
	}

	return map[string]any{"facets": page(items, opts)}, nil
}

func (s *Server) createFacet(variables map[string]any) (map[string]any, error) {
	var input vendure.CreateFacetInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	for _, f := range s.facets {
		if f.Code == input.Code {
			return nil, fmt.Errorf("The facet code \"%s\" is already in use", input.Code)
		}
	}

	if len(input.Translations) == 0 {
		return nil, fmt.Errorf("translations are required")
	}

	facet := &vendure.Facet{
		ID:     s.nextID(),
		Name:   input.Translations[0].Name,
		Code:   input.Code,
		Values: []vendure.FacetValue{},
	}
	s.facets = append(s.facets, facet)

	return map[string]any{"createFacet": facet}, nil
}

func (s *Server) createFacetValues(variables map[string]any) (map[string]any, error) {
	var input []vendure.CreateFacetValueInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	created := make([]vendure.FacetValue, 0, len(input))
	for _, in := range input {
		var facet *vendure.Facet
		for _, f := range s.facets {
			if f.ID == in.FacetID {
				facet = f
			}
		}
		if facet == nil {
			return nil, fmt.Errorf("No Facet with the id \"%s\" could be found", in.FacetID)
		}
		if len(in.Translations) == 0 {
			return nil, fmt.Errorf("translations are required")
		}

		value := vendure.FacetValue{ID: s.nextID(), Name: in.Translations[0].Name, Code: in.Code}
		facet.Values = append(facet.Values, value)
		created = append(created, value)
	}

	return map[string]any{"createFacetValues": created}, nil
}

func (s *Server) listProducts(variables map[string]any) (map[string]any, error) {
	var opts options
	if err := decodeVariable(variables, "options", &opts); err != nil {
		return nil, err
	}

	items := make([]vendure.Product, 0, len(s.products))
	for _, p := range s.products {
		items = append(items, p.Product)
	}

	return map[string]any{"products": page(items, opts)}, nil
}

func (s *Server) createProduct(variables map[string]any) (map[string]any, error) {
	var input vendure.CreateProductInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	if len(input.Translations) == 0 {
		return nil, fmt.Errorf("translations are required")
	}

	translation := input.Translations[0]
	record := &ProductRecord{
		Product: vendure.Product{
			ID:   s.nextID(),
			Name: translation.Name,
			Slug: translation.Slug,
		},
		Description:   translation.Description,
		FacetValueIDs: input.FacetValueIDs,
		CustomFields:  input.CustomFields,
	}
	s.products = append(s.products, record)

	return map[string]any{"createProduct": record.Product}, nil
}

func (s *Server) createProductVariants(variables map[string]any) (map[string]any, error) {
	var input []vendure.CreateProductVariantInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	created := make([]vendure.ProductVariant, 0, len(input))
	for _, in := range input {
		product := s.findProduct(in.ProductID)
		if product == nil {
			return nil, fmt.Errorf("No Product with the id \"%s\" could be found", in.ProductID)
		}

		variant := VariantRecord{
			ProductVariant: vendure.ProductVariant{
				ID:          s.nextID(),
				SKU:         in.SKU,
				Price:       in.Price,
				StockOnHand: in.StockOnHand,
			},
			ProductID: in.ProductID,
		}
		if len(in.Translations) > 0 {
			variant.Name = in.Translations[0].Name
		}
		product.Variants = append(product.Variants, variant)
		created = append(created, variant.ProductVariant)
	}

	return map[string]any{"createProductVariants": created}, nil
}

func (s *Server) updateProduct(variables map[string]any) (map[string]any, error) {
	var input vendure.UpdateProductAssetsInput
	if err := decodeVariable(variables, "input", &input); err != nil {
		return nil, err
	}

	product := s.findProduct(input.ID)
	if product == nil {
		return nil, fmt.Errorf("No Product with the id \"%s\" could be found", input.ID)
	}
	product.FeaturedAssetID = input.FeaturedAssetID
	product.AssetIDs = input.AssetIDs

	return map[string]any{"updateProduct": product.Product}, nil
}

func (s *Server) createAssets(file *graphql.File) (map[string]any, error) {
	if file == nil {
		return nil, fmt.Errorf("file is required")
	}

	if !strings.HasPrefix(http.DetectContentType(file.Data), "image/") {
		return map[string]any{"createAssets": []map[string]any{{
			"__typename": "MimeTypeError",
			"errorCode":  "MIME_TYPE_ERROR",
			"message":    fmt.Sprintf("The MIME type of %s is not permitted", file.Name),
		}}}, nil
	}

	asset := vendure.Asset{ID: s.nextID(), Name: file.Name}
	s.assets = append(s.assets, asset)

	return map[string]any{"createAssets": []map[string]any{{
		"__typename": "Asset",
		"id":         asset.ID,
		"name":       asset.Name,
	}}}, nil
}

func (s *Server) findCollection(id string) *CollectionRecord {
	for _, c := range s.collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Server) findProduct(id string) *ProductRecord {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) uniqueCollectionSlug(slug string) string {
	candidate := slug
	for n := 2; ; n++ {
		taken := false
		for _, c := range s.collections {
			if c.Slug == candidate {
				taken = true
				break
			}
		}
		if !taken {
			return candidate
		}
		candidate = slug + "-" + strconv.Itoa(n)
	}
}

func (s *Server) nextID() string {
	s.ids++
	return strconv.Itoa(s.ids)
}

func (s *Server) nextToken() string {
	s.tokens++
	return fmt.Sprintf("token-%d", s.tokens)
}

type options struct {
	Skip   int `json:"skip"`
	Take   int `json:"take"`
	Filter struct {
		Name struct {
			Contains string `json:"contains"`
		} `json:"name"`
	} `json:"filter"`
}

func page[T any](items []T, opts options) map[string]any {
	total := len(items)
	start := min(opts.Skip, total)
	end := total
	if opts.Take > 0 {
		end = min(start+opts.Take, total)
	}

	return map[string]any{
		"items":      items[start:end],
		"totalItems": total,
	}
}

func decodeRequest(req *http.Request) (*graphql.Request, *graphql.File, error) {
	var gqlReq graphql.Request

	if !strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/") {
		if err := json.NewDecoder(req.Body).Decode(&gqlReq); err != nil {
			return nil, nil, fmt.Errorf("can't decode request: %w", err)
		}
		return &gqlReq, nil, nil
	}

	reader, err := req.MultipartReader()
	if err != nil {
		return nil, nil, fmt.Errorf("can't read multipart request: %w", err)
	}

	var file *graphql.File
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("can't read part: %w", err)
		}

		content, err := io.ReadAll(part)
		if err != nil {
			return nil, nil, fmt.Errorf("can't read part content: %w", err)
		}

		switch part.FormName() {
		case "operations":
			if err := json.Unmarshal(content, &gqlReq); err != nil {
				return nil, nil, fmt.Errorf("can't decode operations: %w", err)
			}
		case "map":
		case "0":
			file = &graphql.File{
				Name:        part.FileName(),
				ContentType: part.Header.Get("Content-Type"),
				Data:        content,
			}
		}
	}

	return &gqlReq, file, nil
}

func decodeVariable(variables map[string]any, name string, out any) error {
	raw, err := json.Marshal(variables[name])
	if err != nil {
		return fmt.Errorf("can't encode variable %s: %w", name, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("can't decode variable %s: %w", name, err)
	}

	return nil
}

func writeData(wrt http.ResponseWriter, data map[string]any) {
	wrt.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(wrt).Encode(map[string]any{"data": data})
}

func writeErrors(wrt http.ResponseWriter, messages ...string) {
	errs := make([]graphql.ErrorMessage, 0, len(messages))
	for _, msg := range messages {
		errs = append(errs, graphql.ErrorMessage{Message: msg})
	}

	wrt.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(wrt).Encode(map[string]any{"errors": errs, "data": nil})
}
