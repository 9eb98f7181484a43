package tools

import "fmt"

// OnboardingPrompt renders the checklist an agent follows when onboarding
// a new employee.
func OnboardingPrompt(employeeName, managerName string) string {
	return fmt.Sprintf(`Onboard a new employee with the following details:
- Name: %s
- Manager Name: %s
Steps to follow:
- Add the employee to the HR system.
- Send a welcome email to the employee with their login credentials. (Format: employee_name@veltrix.com)
- Notify the manager about the new employee's onboarding.
- Raise tickets for a new laptop, id card, and other necessary equipment.
- Schedule an introductory meeting between the employee and the manager.`,
		employeeName, managerName)
}
