package crawler

// Selectors for the search results markup. These track the live page
// structure and are expected to need maintenance when it changes.
const (
	selBody = "body"

	selSignInOpen   = "#base-contextual-sign-in-modal .sign-in-modal__outlet-btn"
	selSignInEmail  = "#base-sign-in-modal_session_key"
	selSignInPass   = "#base-sign-in-modal_session_password"
	selSignInSubmit = `#base-sign-in-modal form button[type="submit"]`

	selLazyCard    = "li.occludable-update"
	selJobCard     = ".job-card-container"
	selDescription = ".jobs-description__container"

	selPagination   = "li.artdeco-pagination__indicator"
	selPageButton   = "li[data-test-pagination-page-btn] button"
	selSelectedPage = "li.selected button"
)
