package vendure

// Admin API operation documents. Operation names are used by venduretesting.Server for dispatching.

const loginMutation = `
mutation Login($username: String!, $password: String!) {
	login(username: $username, password: $password, rememberMe: true) {
		__typename
		... on CurrentUser { id identifier }
		... on ErrorResult { errorCode message }
	}
}`

const collectionsQuery = `
query Collections($options: CollectionListOptions) {
	collections(options: $options) {
		items { id name slug parentId }
		totalItems
	}
}`

const createCollectionMutation = `
mutation CreateCollection($input: CreateCollectionInput!) {
	createCollection(input: $input) { id name slug parentId }
}`

const updateCollectionMutation = `
mutation UpdateCollection($input: UpdateCollectionInput!) {
	updateCollection(input: $input) { id name slug parentId }
}`

const facetsQuery = `
query Facets($options: FacetListOptions) {
	facets(options: $options) {
		items { id name code values { id name code } }
		totalItems
	}
}`

const createFacetMutation = `
mutation CreateFacet($input: CreateFacetInput!) {
	createFacet(input: $input) { id name code values { id name code } }
}`

const createFacetValuesMutation = `
mutation CreateFacetValues($input: [CreateFacetValueInput!]!) {
	createFacetValues(input: $input) { id name code }
}`

const productsQuery = `
query Products($options: ProductListOptions) {
	products(options: $options) {
		items { id name slug }
		totalItems
	}
}`

const createProductMutation = `
mutation CreateProduct($input: CreateProductInput!) {
	createProduct(input: $input) { id name slug }
}`

const createProductVariantsMutation = `
mutation CreateProductVariants($input: [CreateProductVariantInput!]!) {
	createProductVariants(input: $input) { id sku price stockOnHand }
}`

const updateProductMutation = `
mutation UpdateProduct($input: UpdateProductInput!) {
	updateProduct(input: $input) { id name slug featuredAsset { id } }
}`

const createAssetsMutation = `
mutation CreateAssets($input: [CreateAssetInput!]!) {
	createAssets(input: $input) {
		__typename
		... on Asset { id name }
		... on ErrorResult { errorCode message }
	}
}`
