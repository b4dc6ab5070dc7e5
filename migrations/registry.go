package migrations

// All returns the registered migrations in the order they are applied
func All() []*Migration {
	return []*Migration{
		createServices(),
		createSpecializations(),
		renameSpecializationsName(),
		addSpecializationsActiveFlag(),
		createPaymentMethods(),
		createLanguages(),
		addLanguagesUniqueConstraints(),
		createCurrencies(),
		createUnits(),
		createAdminAuth(),
		addAdminAuthActivationToken(),
		makeAdminAuthPasswordNullable(),
		addAdminAuthSetupCompleted(),
		addAdminAuthResetToken(),
		createAdminDetails(),
		createRoles(),
		addRolesCategory(),
		createClientContactPersons(),
		addClientContactPersonsUniqueEmail(),
		createVendorContactPersons(),
		addVendorContactPersonsUniqueEmail(),
		createEmailPaymentDetails(),
		renameEmailPaymentDetailsHolderName(),
		createAdminPaymentMethods(),
		addAdminPaymentMethodsFlags(),
	}
}
