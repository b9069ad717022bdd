package handlers

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	UserHandler     *UserHandler
	FichajeHandler  *FichajeHandler
	RecoveryHandler *RecoveryHandler
}
